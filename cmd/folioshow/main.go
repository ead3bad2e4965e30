// Command folioshow renders a folio document in a window and re-renders
// it on demand.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"folio/pkg/config"
	"folio/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: folioshow [flags] <document.yaml>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	docPath := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: "15:04:05.00"})

	a := app.New()
	w := a.NewWindow("folio - " + docPath)
	w.Resize(fyne.NewSize(float32(cfg.Page.Width), float32(cfg.Page.Height)+60))

	canvasImg := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	canvasImg.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel("")

	reload := func() {
		res, err := pipeline.RunFile(context.Background(), docPath, pipeline.Options{Config: cfg, Logger: logger})
		if err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		canvasImg.Image = res.Image()
		canvasImg.Refresh()
		status.SetText(fmt.Sprintf("%d blocks, %d markers, %d float attempts",
			res.Stats.Blocks, res.Stats.Markers, res.Stats.FloatAttempts))
	}

	reloadBtn := widget.NewButton("Reload", reload)
	bottom := container.NewBorder(nil, nil, nil, reloadBtn, status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, container.NewScroll(canvasImg)))

	reload()
	w.ShowAndRun()
}
