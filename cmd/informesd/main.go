// Command informesd serves the report API, and renders single reports
// from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/zeptools/informes/conf"
	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/reports"
	"github.com/zeptools/informes/sec"
)

func main() {
	cmd := &cli.Command{
		Name:  "informesd",
		Usage: "Paginated PDF reports for creaciones, cobertura and titularizaciones",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API (and the admin socket when uds_path is set)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "root",
						Usage:   "App root holding config/",
						Value:   ".",
						Sources: cli.EnvVars("INFORMES_ROOT"),
					},
				},
				Action: serve,
			},
			{
				Name:  "render",
				Usage: "Render one report from a JSON request body",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "creaciones, cobertura or titularizaciones", Required: true},
					&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "JSON request body (default: stdin)"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output PDF path (default: informe-<kind>-<millis>.pdf)"},
					&cli.StringFlag{Name: "style", Usage: "Style preset", Value: informe.StyleClasico},
					&cli.StringFlag{Name: "styles", Usage: "Extra styles YAML file"},
					&cli.StringFlag{Name: "user", Usage: "User shown in the footer"},
				},
				Action: render,
			},
			{
				Name:  "gen-secret",
				Usage: "Print a random value for token.secret in .core.json",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "bytes", Usage: "Random bytes before encoding", Value: 32},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					secret, err := sec.GenerateOpaqueToken(int(cmd.Int("bytes")))
					if err != nil {
						return err
					}
					fmt.Println(secret)
					return nil
				},
			},
			{
				Name:      "hash-pin",
				Usage:     "Print the bcrypt hash of a module PIN for the pins section of .core.json",
				ArgsUsage: "<pin>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					hash, err := sec.HashPIN(cmd.Args().First())
					if err != nil {
						return err
					}
					fmt.Println(hash)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	appRoot, err := filepath.Abs(cmd.String("root"))
	if err != nil {
		return err
	}
	rootCtx, rootCancel := context.WithCancel(ctx)
	defer rootCancel()

	c := &conf.Core{}
	if err = c.BaseInit(appRoot, rootCtx, rootCancel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer c.ResourceCleanUp()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"styles", c.PrepareStyles},
		{"logo", c.PrepareLogo},
		{"security", c.PrepareSecurity},
		{"sql databases", c.PrepareSQLDatabases},
		{"kv database", c.PrepareKVDatabase},
		{"throttle", func() error { return c.PrepareThrottleBucketStore(time.Minute, 10*time.Minute) }},
	}
	for _, step := range steps {
		if err = step.fn(); err != nil {
			return fmt.Errorf("prepare %s: %w", step.name, err)
		}
	}
	c.PrepareActivityLog()
	c.PrepareUDSService()
	if err = c.PrepareWebService(); err != nil {
		return fmt.Errorf("prepare web service: %w", err)
	}

	if err = c.StartServices(); err != nil {
		c.StopServices()
		return err
	}
	log.Printf("[INFO] %s started on %s", c.AppName, c.WebService.Addr())
	if err = c.WaitServicesDone(); err != nil {
		c.StopServices()
		return err
	}
	log.Printf("[INFO] %s stopped", c.AppName)
	return nil
}

func render(ctx context.Context, cmd *cli.Command) error {
	store := informe.NewStyleStore()
	if path := cmd.String("styles"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = informe.LoadStyles(f, store)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	style, ok := store.Get(cmd.String("style"))
	if !ok {
		return fmt.Errorf("unknown style %q (have %v)", cmd.String("style"), store.Keys())
	}
	rep, err := reports.Standard(nil).Lookup(cmd.String("kind"))
	if err != nil {
		return err
	}

	var body []byte
	if in := cmd.String("in"); in != "" {
		body, err = os.ReadFile(in)
	} else {
		body, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	rd := reports.NewRenderer(style)
	doc, err := rep.RenderJSON(ctx, rd, body, cmd.String("user"))
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		out = reports.Filename(rep.Describe().Kind, rd.Now())
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if _, err = doc.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	layout := doc.Layout()
	fmt.Fprintf(os.Stderr, "%s: %d cards, %d pages\n", out, len(layout.Cards), layout.Pages)
	return nil
}
