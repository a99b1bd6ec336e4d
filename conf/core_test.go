package conf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeptools/informes/activity"
	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/pdfs"
	"github.com/zeptools/informes/web"
)

func writeConfig(t *testing.T, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, "config", name), []byte(content), 0o600))
	}
}

func loadCore(t *testing.T, coreJSON string, extra map[string]string) *Core {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{".core.json": coreJSON}
	for k, v := range extra {
		files[k] = v
	}
	writeConfig(t, root, files)
	c := &Core{AppRoot: root, RootCtx: context.Background()}
	require.NoError(t, c.load(c.configPath(".core.json")))
	return c
}

func TestLoad_Defaults(t *testing.T) {
	c := loadCore(t, `{"pins": {"cobertura": "x"}}`, nil)
	assert.Equal(t, "informes", c.AppName)
	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, informe.StyleClasico, c.Style)
	assert.Equal(t, "a4", c.Paper)
	assert.Equal(t, "America/Argentina/Buenos_Aires", c.Location.String())
	assert.Equal(t, 1000, c.ActivityCap)
	assert.Equal(t, DefaultMaxRecords, c.MaxRecords, "reports are bounded even without max_records")
	assert.Contains(t, c.PINs, "COBERTURA")
}

func TestLoad_Errors(t *testing.T) {
	root := t.TempDir()
	c := &Core{AppRoot: root}
	assert.Error(t, c.load(c.configPath(".core.json")))

	writeConfig(t, root, map[string]string{".core.json": `{"time_zone": "Mars/Olympus"}`})
	assert.ErrorContains(t, c.load(c.configPath(".core.json")), "time_zone")

	writeConfig(t, root, map[string]string{".core.json": `{"listen": 8080}`})
	assert.Error(t, c.load(c.configPath(".core.json")))
}

func TestGeometry(t *testing.T) {
	c := loadCore(t, `{}`, nil)
	g, err := c.Geometry()
	require.NoError(t, err)
	assert.Equal(t, informe.DefaultGeometry(), g)

	c.Paper = "Letter"
	g, err = c.Geometry()
	require.NoError(t, err)
	assert.Equal(t, pdfs.LetterSize, g.Paper)
	assert.InDelta(t, 512, g.ContentWidth, 0.001)
	assert.InDelta(t, 742, g.FooterLimit, 0.001)
	assert.Less(t, g.PageBreakThreshold, g.FooterLimit)

	c.Paper = "tabloid"
	_, err = c.Geometry()
	assert.Error(t, err)
}

func TestPrepareStyles(t *testing.T) {
	c := loadCore(t, `{"style": "institucional"}`, map[string]string{
		"styles.yaml": "styles:\n  institucional:\n    base: sencillo\n    page_numbers: true\n",
	})
	require.NoError(t, c.PrepareStyles())
	assert.Equal(t, []string{"clasico", "compacto", "institucional", "sencillo"}, c.Styles.Keys())
	s, ok := c.Styles.Get("institucional")
	require.True(t, ok)
	assert.True(t, s.PageNumbers)
	assert.False(t, s.PageBorder)

	c = loadCore(t, `{"style": "festivo"}`, nil)
	assert.ErrorContains(t, c.PrepareStyles(), "festivo")

	c = loadCore(t, `{}`, map[string]string{"styles.yaml": "styles:\n  roto:\n    base: nada\n"})
	assert.Error(t, c.PrepareStyles())
}

func TestPrepareLogo(t *testing.T) {
	c := loadCore(t, `{"logo_path": "assets/escudo.PNG"}`, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(c.AppRoot, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(c.AppRoot, "assets", "escudo.PNG"), []byte("img"), 0o600))
	require.NoError(t, c.PrepareLogo())
	require.NotNil(t, c.Logo)
	assert.Equal(t, "png", c.Logo.Kind)
	assert.Equal(t, []byte("img"), c.Logo.Data)

	c.LogoPath = "assets/escudo.svg"
	assert.ErrorContains(t, c.PrepareLogo(), "unsupported")

	c.LogoPath = ""
	c.Logo = nil
	require.NoError(t, c.PrepareLogo())
	assert.Nil(t, c.Logo)
}

func TestPrepareSecurity(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1212"), bcrypt.MinCost)
	require.NoError(t, err)

	c := loadCore(t, `{"token": {"secret": "short"}}`, nil)
	assert.ErrorContains(t, c.PrepareSecurity(), "secret")

	c.Token.Secret = "0123456789abcdef0123456789abcdef"
	assert.ErrorContains(t, c.PrepareSecurity(), "PIN")

	c.PINs = map[string]string{"COBERTURA": "plain"}
	assert.Error(t, c.PrepareSecurity())

	c.PINs = map[string]string{"COBERTURA": string(hash)}
	c.Token.TTL = "nope"
	assert.Error(t, c.PrepareSecurity())

	c.Token.TTL = "30m"
	require.NoError(t, c.PrepareSecurity())
	assert.Equal(t, 30*time.Minute, c.Issuer.TTL)
	assert.Equal(t, "informes", c.Issuer.Issuer)
}

func TestExampleConfig(t *testing.T) {
	core, err := os.ReadFile(filepath.Join("..", "config", ".core.json.example"))
	require.NoError(t, err)
	styles, err := os.ReadFile(filepath.Join("..", "config", "styles.yaml"))
	require.NoError(t, err)

	c := loadCore(t, string(core), map[string]string{"styles.yaml": string(styles)})
	require.NoError(t, c.PrepareSecurity())
	assert.Equal(t, []string{"COBERTURA", "CREACIONES", "TITULARIZACIONES"}, c.PINs.Modules())
	assert.NoError(t, c.PINs.Check("CREACIONES", "1111"))
	assert.NoError(t, c.PINs.Check("COBERTURA", "2222"))
	assert.NoError(t, c.PINs.Check("TITULARIZACIONES", "3333"))
	assert.Error(t, c.PINs.Check("COBERTURA", "1111"))

	require.NoError(t, c.PrepareStyles())
	assert.Equal(t, 5000, c.MaxRecords)
}

func TestPrepareDatabases_Optional(t *testing.T) {
	c := loadCore(t, `{}`, nil)
	require.NoError(t, c.PrepareSQLDatabases())
	require.NoError(t, c.PrepareKVDatabase())
	assert.Empty(t, c.BackendSQLDBClients)
	assert.Nil(t, c.BackendKVDBClient)

	c.PrepareActivityLog()
	assert.IsType(t, &activity.MemoryLog{}, c.ActivityLog)

	reg := c.Registry()
	rep, err := reg.Lookup("cobertura")
	require.NoError(t, err)
	assert.False(t, rep.HasSource())
}

func TestPrepareDatabases_Unsupported(t *testing.T) {
	c := loadCore(t, `{}`, map[string]string{
		".sql-databases.json": `{"main": {"type": "oracle"}}`,
		".kv-databases.json":  `{"type": "memcached"}`,
	})
	assert.ErrorContains(t, c.PrepareSQLDatabases(), "oracle")
	assert.ErrorContains(t, c.PrepareKVDatabase(), "memcached")
}

func TestPrepareThrottleBucketStore(t *testing.T) {
	c := loadCore(t, `{"throttle": {"login": {"burst": 2, "increment": 1, "period": "1m"}}}`, nil)
	require.NoError(t, c.PrepareThrottleBucketStore(time.Minute, time.Hour))
	_, ok := c.ThrottleBucketStore.GetBucketGroup(web.ThrottleLogin)
	assert.True(t, ok)

	c = loadCore(t, `{"throttle": {"login": {"burst": 2, "increment": 1, "period": "often"}}}`, nil)
	assert.Error(t, c.PrepareThrottleBucketStore(time.Minute, time.Hour))
}

func TestRendererAndWebService(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1111"), bcrypt.MinCost)
	require.NoError(t, err)
	c := loadCore(t, `{
		"listen": "127.0.0.1:0",
		"organisation": "Consejo Provincial de Educación",
		"style": "compacto",
		"max_records": 500,
		"token": {"secret": "0123456789abcdef0123456789abcdef"},
		"pins": {"creaciones": "`+string(hash)+`"}
	}`, nil)
	require.NoError(t, c.PrepareStyles())
	require.NoError(t, c.PrepareLogo())
	require.NoError(t, c.PrepareSecurity())
	require.NoError(t, c.PrepareSQLDatabases())
	c.PrepareActivityLog()

	rd, err := c.Renderer()
	require.NoError(t, err)
	assert.Equal(t, "compacto", rd.Style.Name)
	assert.Equal(t, 500, rd.MaxRecords)
	assert.Equal(t, "Consejo Provincial de Educación", rd.Organisation)
	assert.Equal(t, c.Location, rd.Now().Location())

	ctx, cancel := context.WithCancel(context.Background())
	c.RootCtx, c.RootCancel = ctx, cancel
	require.NoError(t, c.PrepareWebService())
	require.NoError(t, c.StartServices())
	cancel()
	assert.NoError(t, c.WaitServicesDone())
	c.ResourceCleanUp()
}
