package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/soocke/pixel-click-go/app"
	"github.com/soocke/pixel-click-go/domain/action"
	"github.com/soocke/pixel-click-go/domain/capture"
	"github.com/soocke/pixel-click-go/domain/template"
	"github.com/soocke/pixel-click-go/ui/view"
)

func main() {
	root := app.NewRootCommand(app.Env{
		Screen:    capture.New,
		Templates: template.FileSource{},
		Pointer:   action.SystemPointer{},
		Preview: func(title string, frame image.Image, box image.Rectangle, found bool, caption string) {
			view.NewPreview(title).Show(frame, box, found, caption)
		},
		Logger: func(level slog.Leveler) *slog.Logger {
			return NewLogger(os.Stderr, level)
		},
	})
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(app.ExitCode(err))
}
