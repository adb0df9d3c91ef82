package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spf13/cobra"
)

func init() {
	showCmd.Flags().BoolVar(&showFit, "fit", true, "scale the image to fit the display, keeping its aspect ratio")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show /path/to/image",
	Short: "display an image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error { return show(args[0]) })
	},
}

var showFit bool

func decodeImage(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, wrap(err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, wrap(err)
	}
	log.Printf("decoded %s image %s", format, img.Bounds().Size())
	return img, nil
}

// fitRect returns the largest rectangle with the aspect ratio of src centered in dst.
func fitRect(dst image.Rectangle, src image.Point) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := dst.Dx(), dst.Dx()*src.Y/src.X
	if h > dst.Dy() {
		w, h = dst.Dy()*src.X/src.Y, dst.Dy()
	}
	origin := dst.Min.Add(image.Pt((dst.Dx()-w)/2, (dst.Dy()-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}

func show(name string) (err error) {
	img, err := decodeImage(name)
	if err != nil {
		return
	}

	d, err := openDevice()
	if err != nil {
		return
	}
	defer d.Close()

	r := d.Bounds()
	if showFit {
		r = fitRect(r, img.Bounds().Size())
	}
	d.Clear()
	xdraw.CatmullRom.Scale(d, r, img, img.Bounds(), xdraw.Src, nil)

	if err = d.Refresh(); err != nil {
		return wrap(err)
	}
	return d.on()
}
