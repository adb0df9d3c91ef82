package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/panel/draw"
	"github.com/BeatGlow/panel/pixel"
)

func init() { rootCmd.AddCommand(demoCmd) }

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "animate a gradient with the panel name",
	Run: func(cmd *cobra.Command, args []string) {
		run(demo)
	},
}

func demo() (err error) {
	d, err := openDevice()
	if err != nil {
		return
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		offset int
		ticker = time.NewTicker(50 * time.Millisecond)
		r      = d.Bounds()
		label  = fmt.Sprintf("%dx%d", r.Dx(), r.Dy())
	)
	defer ticker.Stop()

	textBounds, err := draw.TextBounds(16, label)
	if err != nil {
		return wrap(err)
	}
	textPos := image.Pt(r.Dx()/2-textBounds.Dx()/2, r.Dy()/2+textBounds.Dy()/2)
	labelBox := image.Rectangle{
		Min: textPos.Add(image.Pt(-6, -textBounds.Dy()-4)),
		Max: textPos.Add(image.Pt(textBounds.Dx()+6, 6)),
	}

	if err = d.on(); err != nil {
		return
	}

	log.Println("hit control-c to stop...")
	for {
		// gradient inside a frame
		for y := 1; y < r.Max.Y-1; y++ {
			for x := 1; x < r.Max.X-1; x++ {
				d.Set(x, y, color.RGBA{
					R: uint8(x + y + offset),
					G: uint8(x - y + offset),
					B: uint8(x + y - offset),
					A: 0xff,
				})
			}
		}
		draw.Rectangle(d, r, pixel.On)
		draw.Line(d, r.Min, r.Max.Sub(image.Pt(1, 1)), pixel.On)
		draw.Line(d, image.Pt(r.Max.X-1, r.Min.Y), image.Pt(r.Min.X, r.Max.Y-1), pixel.On)
		draw.RoundedBox(d, labelBox, 5, color.Black)
		draw.RoundedRectangle(d, labelBox, 5, color.White)
		if _, err = draw.Text(d, textPos, 16, label, color.White); err != nil {
			return wrap(err)
		}

		if err = d.Refresh(); err != nil {
			return wrap(err)
		}

		offset++
		select {
		case <-ctx.Done():
			return d.Show(false)
		case <-ticker.C:
		}
	}
}
