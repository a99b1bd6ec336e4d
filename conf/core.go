package conf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata" // emission timestamps need the zone on hosts without zoneinfo

	"github.com/zeptools/informes/activity"
	"github.com/zeptools/informes/db"
	"github.com/zeptools/informes/db/kvdb"
	"github.com/zeptools/informes/db/kvdb/impls/redis"
	"github.com/zeptools/informes/db/sqldb"
	"github.com/zeptools/informes/db/sqldb/impls/mysql"
	"github.com/zeptools/informes/db/sqldb/impls/pgsql"
	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/pdfs"
	"github.com/zeptools/informes/reports"
	"github.com/zeptools/informes/sec"
	"github.com/zeptools/informes/svc"
	"github.com/zeptools/informes/throttle"
	"github.com/zeptools/informes/uds"
	"github.com/zeptools/informes/web"
)

// DefaultMaxRecords bounds one report when max_records is not set. The
// PDF is held in memory until it is sent, so there is always a bound.
const DefaultMaxRecords = 5000

// Core - common config, loaded from config/.core.json
type Core struct {
	AppName      string                  `json:"app_name"`
	Listen       string                  `json:"listen"`       // HTTP Server Listen IP:PORT Address
	UDSPath      string                  `json:"uds_path"`     // admin socket; empty = no socket
	Organisation string                  `json:"organisation"` // PDF author
	LogoPath     string                  `json:"logo_path"`    // relative to AppRoot
	Style        string                  `json:"style"`        // preset name, default clasico
	Paper        string                  `json:"paper"`        // a4, letter, legal
	TimeZone     string                  `json:"time_zone"`    // emission timestamps, default America/Argentina/Buenos_Aires
	MaxRecords   int                     `json:"max_records"`  // default DefaultMaxRecords
	MaxBodyBytes int64                   `json:"max_body_bytes"`
	ActivityCap  int                     `json:"activity_cap"`
	Throttle     map[string]ThrottleConf `json:"throttle"` // keyed by web.ThrottleReports / web.ThrottleLogin
	Token        TokenConf               `json:"token"`
	PINs         sec.PINs                `json:"pins"`      // module -> bcrypt hash
	ReportDB     string                  `json:"report_db"` // .sql-databases.json entry feeding GET reports

	AppRoot             string                             `json:"-"` // Filled from compiled paths
	RootCtx             context.Context                    `json:"-"` // Global Context with RootCancel
	RootCancel          context.CancelFunc                 `json:"-"` // CancelFunc for RootCtx
	Location            *time.Location                     `json:"-"`
	Styles              *pdfs.TemplateStore[informe.Style] `json:"-"` // PrepareStyles
	Logo                *informe.Logo                      `json:"-"` // PrepareLogo
	Issuer              *sec.Issuer                        `json:"-"`
	UDSService          *uds.Service                       `json:"-"` // PrepareUDSService
	WebService          *web.Service                       `json:"-"` // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore[string]      `json:"-"` // PrepareThrottleBucketStore
	KVDBConf            kvdb.Conf                          `json:"-"` // loadKVDBConf
	BackendKVDBClient   kvdb.Client                        `json:"-"` // PrepareKVDatabase
	SQLDBConfs          map[string]*sqldb.Conf             `json:"-"` // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client            `json:"-"` // PrepareSQLDatabases
	ActivityLog         activity.Log                       `json:"-"` // PrepareActivityLog

	services []svc.Service // Services to Manage
	done     chan error
}

type ThrottleConf struct {
	Burst     int    `json:"burst"`
	Increment int    `json:"increment"`
	Period    string `json:"period"` // e.g. "1m"
}

func (t ThrottleConf) BucketConf() (*throttle.BucketConf, error) {
	period, err := time.ParseDuration(t.Period)
	if err != nil {
		return nil, fmt.Errorf("throttle period %q: %w", t.Period, err)
	}
	bc := &throttle.BucketConf{Burst: t.Burst, Increment: t.Increment, Period: period}
	return bc, bc.Validate()
}

type TokenConf struct {
	Secret string `json:"secret"` // HS256 key, at least 32 bytes
	TTL    string `json:"ttl"`    // default 8h
	Issuer string `json:"issuer"`
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. prepare base fields
// 4. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	if err := c.load(c.configPath(".core.json")); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

func (c *Core) configPath(name string) string {
	return filepath.Join(c.AppRoot, "config", name)
}

func (c *Core) load(path string) error {
	confBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.prepareDefaults()
}

func (c *Core) prepareDefaults() error {
	if c.AppName == "" {
		c.AppName = "informes"
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Style == "" {
		c.Style = informe.StyleClasico
	}
	if c.Paper == "" {
		c.Paper = "a4"
	}
	if c.TimeZone == "" {
		c.TimeZone = "America/Argentina/Buenos_Aires"
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = DefaultMaxRecords
	}
	if c.ActivityCap <= 0 {
		c.ActivityCap = 1000
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("time_zone: %w", err)
	}
	c.Location = loc

	// PINs are looked up by upper-cased module
	pins := make(sec.PINs, len(c.PINs))
	for m, h := range c.PINs {
		pins[strings.ToUpper(m)] = h
	}
	c.PINs = pins
	return nil
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		if err := s.Start(); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
		go func() {
			c.done <- <-s.Done()
		}()
	}
	return nil
}

func (c *Core) WaitServicesDone() error {
	for range c.services {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

// Geometry is the page policy for the configured paper: 50pt margins and
// the footer band A4 reports use
func (c *Core) Geometry() (informe.Geometry, error) {
	paper, ok := pdfs.PaperSizeByName(c.Paper)
	if !ok {
		return informe.Geometry{}, fmt.Errorf("unknown paper %q", c.Paper)
	}
	g := informe.DefaultGeometry()
	if paper != g.Paper {
		band := g.Paper.Height - g.PageBreakThreshold
		g.Paper = paper
		g.ContentWidth = paper.Width - 2*g.Margin
		g.PageBreakThreshold = paper.Height - band
		g.FooterLimit = paper.Height - g.Margin
	}
	return g, g.Validate()
}

// PrepareStyles loads the presets plus config/styles.yaml if present, and
// checks the selected style against the page geometry
func (c *Core) PrepareStyles() error {
	c.Styles = informe.NewStyleStore()
	f, err := os.Open(c.configPath("styles.yaml"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		defer func() { _ = f.Close() }()
		if err = informe.LoadStyles(f, c.Styles); err != nil {
			return fmt.Errorf("styles.yaml: %w", err)
		}
	}
	style, ok := c.Styles.Get(c.Style)
	if !ok {
		return fmt.Errorf("style %q not found (have %v)", c.Style, c.Styles.Keys())
	}
	g, err := c.Geometry()
	if err != nil {
		return err
	}
	if err = style.Validate(g); err != nil {
		return err
	}
	log.Printf("[INFO][CORE] %d styles loaded, using %q", c.Styles.Len(), c.Style)
	return nil
}

// PrepareLogo reads the header logo. Reports render without one when
// logo_path is empty.
func (c *Core) PrepareLogo() error {
	if c.LogoPath == "" {
		return nil
	}
	path := c.LogoPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.AppRoot, path)
	}
	var kind string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		kind = "png"
	case ".jpg", ".jpeg":
		kind = "jpg"
	case ".gif":
		kind = "gif"
	default:
		return fmt.Errorf("logo %s: unsupported image type %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.Logo = &informe.Logo{Name: "logo", Kind: kind, Data: data}
	return nil
}

// PrepareSecurity builds the token issuer and checks the PIN hashes
func (c *Core) PrepareSecurity() error {
	if len(c.Token.Secret) < 32 {
		return errors.New("token.secret must be at least 32 bytes")
	}
	ttl := 8 * time.Hour
	if c.Token.TTL != "" {
		v, err := time.ParseDuration(c.Token.TTL)
		if err != nil || v <= 0 {
			return fmt.Errorf("token.ttl %q: invalid duration", c.Token.TTL)
		}
		ttl = v
	}
	if len(c.PINs) == 0 {
		return errors.New("no module PINs configured")
	}
	if err := c.PINs.Validate(); err != nil {
		return err
	}
	issuer := c.Token.Issuer
	if issuer == "" {
		issuer = c.AppName
	}
	c.Issuer = &sec.Issuer{Secret: []byte(c.Token.Secret), TTL: ttl, Issuer: issuer}
	log.Printf("[INFO][CORE] PIN login for %v, tokens valid %v", c.PINs.Modules(), ttl)
	return nil
}

// readOptional decodes config/<name> into v. A missing file is not an error.
func (c *Core) readOptional(name string, v any) (bool, error) {
	confBytes, err := os.ReadFile(c.configPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = json.Unmarshal(confBytes, v); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return true, nil
}

// PrepareKVDatabase connects the key-value database from
// config/.kv-databases.json, if the file exists
func (c *Core) PrepareKVDatabase() error {
	found, err := c.readOptional(".kv-databases.json", &c.KVDBConf)
	if err != nil || !found {
		return err
	}
	switch c.KVDBConf.Type {
	case "redis":
		c.BackendKVDBClient = &redis.Client{Conf: &c.KVDBConf}
		if err = c.BackendKVDBClient.Init(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported key-value database type %q", c.KVDBConf.Type)
	}
	return nil
}

// PrepareSQLDatabases builds one client per entry of
// config/.sql-databases.json, if the file exists. Each client loads the
// statements of every registered group for its dialect.
func (c *Core) PrepareSQLDatabases() error {
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	c.BackendSQLDBClients = make(map[string]sqldb.Client)
	found, err := c.readOptional(".sql-databases.json", &c.SQLDBConfs)
	if err != nil || !found {
		return err
	}

	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()

	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf)
		if err != nil {
			return fmt.Errorf("sql database %q: %w", dbName, err)
		}
		if err = dbClient.Init(); err != nil {
			return fmt.Errorf("sql database %q: %w", dbName, err)
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	if c.ReportDB != "" {
		if _, ok := c.BackendSQLDBClients[c.ReportDB]; !ok {
			return fmt.Errorf("report_db %q is not in .sql-databases.json", c.ReportDB)
		}
	}
	return nil
}

// PrepareActivityLog keeps the activity log in the key-value database when
// one is configured, in memory otherwise
func (c *Core) PrepareActivityLog() {
	if c.BackendKVDBClient != nil {
		c.ActivityLog = &activity.KVLog{
			Client: c.BackendKVDBClient,
			Key:    c.KVDBConf.Key(c.AppName + ":actividades"),
			Cap:    int64(c.ActivityCap),
		}
		log.Printf("[INFO][CORE] activity log in %s", c.KVDBConf.Type)
		return
	}
	c.ActivityLog = activity.NewMemoryLog(c.ActivityCap)
	log.Printf("[INFO][CORE] activity log in memory (last %d)", c.ActivityCap)
}

// PrepareThrottleBucketStore registers one bucket group per throttle entry
func (c *Core) PrepareThrottleBucketStore(cleanupCycle time.Duration, cleanupOlderThan time.Duration) error {
	store := throttle.NewBucketStore[string](c.RootCtx, cleanupCycle, cleanupOlderThan)
	for group, tc := range c.Throttle {
		bc, err := tc.BucketConf()
		if err != nil {
			return fmt.Errorf("throttle %q: %w", group, err)
		}
		store.SetBucketGroup(group, bc)
	}
	c.ThrottleBucketStore = store
	c.AddService(c.ThrottleBucketStore)
	return nil
}

// Renderer returns the report renderer for the configured style
// Prerequisite: PrepareStyles, PrepareLogo
func (c *Core) Renderer() (*reports.Renderer, error) {
	style, ok := c.Styles.Get(c.Style)
	if !ok {
		return nil, fmt.Errorf("style %q not found", c.Style)
	}
	g, err := c.Geometry()
	if err != nil {
		return nil, err
	}
	rd := reports.NewRenderer(style)
	rd.Geometry = g
	rd.Logo = c.Logo
	rd.Organisation = c.Organisation
	rd.Creator = c.AppName
	rd.MaxRecords = c.MaxRecords
	loc := c.Location
	rd.Now = func() time.Time { return time.Now().In(loc) }
	return rd, nil
}

// Registry returns the report kinds, bound to report_db when set
func (c *Core) Registry() *reports.Registry {
	return reports.Standard(c.BackendSQLDBClients[c.ReportDB])
}

func (c *Core) PrepareUDSService() {
	if c.UDSPath == "" {
		return
	}
	c.UDSService = uds.NewService(c.RootCtx, c.UDSPath, map[string]uds.CmdHnd{
		"styles":    uds.StylesCmd(c.Styles, c.Style),
		"actividad": uds.ActivityCmd(c.ActivityLog),
		"modulos":   uds.ModulesCmd(c.PINs),
	})
	c.AddService(c.UDSService)
}

// PrepareWebService wires the HTTP API
// Prerequisite: every other Prepare step
func (c *Core) PrepareWebService() error {
	rd, err := c.Renderer()
	if err != nil {
		return err
	}
	router := web.NewRouter(&web.Deps{
		Reports:      c.Registry(),
		Renderer:     rd,
		Issuer:       c.Issuer,
		PINs:         c.PINs,
		Activity:     c.ActivityLog,
		Throttle:     c.ThrottleBucketStore,
		MaxBodyBytes: c.MaxBodyBytes,
		Location:     c.Location,
	})
	c.WebService = web.NewService(c.RootCtx, c.Listen, router)
	c.AddService(c.WebService)
	return nil
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.BackendKVDBClient != nil {
		db.CloseClient("kv:"+c.KVDBConf.Type, c.BackendKVDBClient)
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		db.CloseClient("sql:"+name, sqlDBClient)
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
