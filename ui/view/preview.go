package view

import (
	"image"
	"image/color"

	"github.com/soocke/pixel-click-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	maxPreviewW = 960
	maxPreviewH = 540
)

var outlineColor = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}

// Preview shows one capture, with the detected box outlined, in a Tk window.
type Preview struct {
	title string
	photo *Img // current Tk photo, deleted on close
}

// NewPreview returns a preview with the given window title.
func NewPreview(title string) *Preview {
	return &Preview{title: title}
}

// Show builds the window and blocks until it is closed. box is drawn only
// when found is set. The image is scaled down to fit the preview area.
func (p *Preview) Show(frame image.Image, box image.Rectangle, found bool, caption string) {
	if frame == nil {
		return
	}
	img := frame
	if found {
		img = images.Outline(frame, box, outlineColor, 3)
	}
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)

	App.WmTitle(p.title)
	WmProtocol(App, "WM_DELETE_WINDOW", p.close)

	p.photo = NewPhoto(Data(images.EncodePNG(scaled)))
	Pack(Label(Image(p.photo), Borderwidth(1), Relief("sunken")), Padx("1m"), Pady("1m"))
	Pack(Label(Txt(caption), Borderwidth(1), Relief("ridge")), Padx("1m"), Pady("1m"))
	Pack(Button(Txt("Exit"), Command(p.close)), Pady("1m"))

	App.Wait()
}

func (p *Preview) close() {
	if p.photo != nil {
		p.photo.Delete()
		p.photo = nil
	}
	Destroy(App)
}
