package notify

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	captionPadding     = 20
	captionLineSpacing = 10
)

// CaptionImage дорисовывает под изображением белую плашку с подписью,
// перенося слова по ширине картинки. При ошибке декодирования исходные
// байты возвращаются как есть.
func CaptionImage(img []byte, caption string) []byte {
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return img
	}

	face := basicfont.Face7x13
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	lineHeight := face.Metrics().Height.Ceil() + captionLineSpacing

	lines := wrapLines(caption, face, width-2*captionPadding)
	textHeight := lineHeight*len(lines) + 2*captionPadding

	dst := image.NewRGBA(image.Rect(0, 0, width, height+textHeight))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, width, height), src, bounds.Min, draw.Src)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	y := height + captionPadding + face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		lineWidth := drawer.MeasureString(line).Ceil()
		x := (width - lineWidth) / 2
		if x < 0 {
			x = 0
		}
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)
		y += lineHeight
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 95}); err != nil {
		return img
	}
	return out.Bytes()
}

// wrapLines переносит текст по словам так, чтобы строка влезала в maxWidth.
func wrapLines(text string, face font.Face, maxWidth int) []string {
	var lines []string
	d := &font.Drawer{Face: face}
	for _, raw := range strings.Split(text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if d.MeasureString(candidate).Ceil() > maxWidth {
				lines = append(lines, current)
				current = w
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
