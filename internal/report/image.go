// internal/report/image.go
package report

import (
	"bytes"
	"image"
	"image/png"
	"os"

	// Декодеры растровых форматов логотипов и баннеров
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"tabreport/pkg/apperror"
)

// Image - загруженное изображение: байты, размеры в пикселях, формат
type Image struct {
	Data   []byte
	Width  int
	Height int
	Format string
}

// Форматы, которые документный рендер встраивает как есть; остальные
// перекодируются в PNG при загрузке
var embeddable = map[string]bool{
	"png":  true,
	"jpeg": true,
}

// HeightFor возвращает высоту отображения при заданной ширине, mm,
// с сохранением пропорций
func (im *Image) HeightFor(width float64) float64 {
	if im.Width <= 0 {
		return 0
	}
	return width * float64(im.Height) / float64(im.Width)
}

// LoadImage читает растровый файл и его размеры. Любая неудача возвращается
// как предупреждение IMAGE_NOT_FOUND: вызывающая сторона пропускает блоки
// изображений, не прерывая генерацию.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeImageNotFound, "cannot read image file").
			WithField(path).
			WithSeverity(apperror.SeverityWarning)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeImageNotFound, "cannot decode image").
			WithField(path).
			WithSeverity(apperror.SeverityWarning)
	}

	if !embeddable[format] {
		data, err = reencodePNG(data)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeImageNotFound, "cannot convert image").
				WithField(path).
				WithSeverity(apperror.SeverityWarning)
		}
		format = "png"
	}

	return &Image{Data: data, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// reencodePNG перекодирует GIF/BMP/TIFF/WebP в PNG для встраивания в документ
func reencodePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
