package uds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/zeptools/informes/activity"
	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/pdfs"
	"github.com/zeptools/informes/sec"
)

type CmdHnd struct {
	Desc  string
	Usage string
	Fn    func(args []string, w io.Writer) error
}

// StylesCmd lists the style presets; `*` marks the one reports use
func StylesCmd(store *pdfs.TemplateStore[informe.Style], current string) CmdHnd {
	return CmdHnd{
		Desc:  "list report style presets",
		Usage: "styles",
		Fn: func(_ []string, w io.Writer) error {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "\tNAME\tBORDER\tPAGE NUMBERS\tRUNNING HEADER\tVALUE FONT")
			for _, name := range store.Keys() {
				s, _ := store.Get(name)
				mark := ""
				if name == current {
					mark = "*"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%t\t%s\n", mark, name, s.PageBorder, s.PageNumbers, s.RunningHeader, s.ValueFont)
			}
			return tw.Flush()
		},
	}
}

// ModulesCmd lists the modules that can log in
func ModulesCmd(pins sec.PINs) CmdHnd {
	return CmdHnd{
		Desc:  "list modules with a configured PIN",
		Usage: "modulos",
		Fn: func(_ []string, w io.Writer) error {
			modules := pins.Modules()
			if len(modules) == 0 {
				_, err := fmt.Fprintln(w, "(sin módulos)")
				return err
			}
			for _, m := range modules {
				if _, err := fmt.Fprintln(w, m); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// ActivityCmd prints the newest n activity entries (default 20)
func ActivityCmd(l activity.Log) CmdHnd {
	return CmdHnd{
		Desc:  "print the newest activity entries",
		Usage: "actividad [n]",
		Fn: func(args []string, w io.Writer) error {
			n := 20
			if len(args) > 0 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 {
					return errors.New("n must be a positive number")
				}
				n = v
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			entries, err := l.Recent(ctx, n)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\n", e.Fecha, e.Hora, e.Modulo, e.TipoActividad, e.Usuario, e.Descripcion)
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(tw, "(sin actividad)")
			}
			return tw.Flush()
		},
	}
}
