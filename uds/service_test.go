package uds

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/informes/activity"
	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/sec"
)

func testCommands(t *testing.T) (map[string]CmdHnd, *activity.MemoryLog) {
	t.Helper()
	log := activity.NewMemoryLog(10)
	at := time.Date(2025, 3, 7, 9, 30, 0, 0, time.UTC)
	for i, d := range []string{"primero", "segundo", "tercero"} {
		require.NoError(t, log.Record(context.Background(),
			activity.NewEntry(at.Add(time.Duration(i)*time.Minute), "COBERTURA", activity.TipoGeneracionInforme, "ana", d, "")))
	}
	return map[string]CmdHnd{
		"styles":    StylesCmd(informe.NewStyleStore(), informe.StyleCompacto),
		"actividad": ActivityCmd(log),
	}, log
}

func TestStylesCmd(t *testing.T) {
	cmds, _ := testCommands(t)
	var buf bytes.Buffer
	require.NoError(t, cmds["styles"].Fn(nil, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "clasico")
	assert.True(t, strings.HasPrefix(lines[2], "*"))
	assert.Contains(t, lines[2], "compacto")
}

func TestModulesCmd(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ModulesCmd(sec.PINs{"TITULARIZACIONES": "h", "COBERTURA": "h"}).Fn(nil, &buf))
	assert.Equal(t, "COBERTURA\nTITULARIZACIONES\n", buf.String())

	buf.Reset()
	require.NoError(t, ModulesCmd(nil).Fn(nil, &buf))
	assert.Contains(t, buf.String(), "sin módulos")
}

func TestActivityCmd(t *testing.T) {
	cmds, _ := testCommands(t)
	var buf bytes.Buffer
	require.NoError(t, cmds["actividad"].Fn([]string{"2"}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "tercero")
	assert.Contains(t, lines[1], "segundo")

	assert.Error(t, cmds["actividad"].Fn([]string{"x"}, io.Discard))

	buf.Reset()
	require.NoError(t, ActivityCmd(activity.NewMemoryLog(1)).Fn(nil, &buf))
	assert.Contains(t, buf.String(), "sin actividad")
}

func TestService_Session(t *testing.T) {
	dir, err := os.MkdirTemp("", "uds")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	sock := filepath.Join(dir, "informes.sock")

	cmds, _ := testCommands(t)
	s := NewService(context.Background(), sock, cmds)
	require.NoError(t, s.Start())
	defer func() {
		s.Stop()
		select {
		case <-s.Done():
		case <-time.After(2 * time.Second):
			t.Error("service did not stop")
		}
	}()

	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	_, err = io.WriteString(conn, "nope\nhelp\nactividad 1\n")
	require.NoError(t, err)
	out, err := io.ReadAll(bufio.NewReader(conn))
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "unknown command: nope")
	assert.Contains(t, text, "actividad [n]")
	assert.Contains(t, text, "tercero")
	assert.NotContains(t, text, "segundo")
}
