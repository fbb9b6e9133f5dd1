package response

import "github.com/wifeymooc/quizkit/internal/question"

// Viewport describes how an image is fitted into a drag widget: scaled
// uniformly to fit and centered. Tag positions are stored in image
// coordinates; widgets convert with ToImage and ToWidget.
type Viewport struct {
	WidgetWidth  float64
	WidgetHeight float64
	ImageWidth   float64
	ImageHeight  float64
}

// Scale is the uniform factor applied to the image. A viewport without a
// loaded image has scale 1.
func (v Viewport) Scale() float64 {
	if v.ImageWidth <= 0 || v.ImageHeight <= 0 || v.WidgetWidth <= 0 || v.WidgetHeight <= 0 {
		return 1
	}
	return min(v.WidgetWidth/v.ImageWidth, v.WidgetHeight/v.ImageHeight)
}

// Offset is the widget position of the image's top-left corner.
func (v Viewport) Offset() question.Point {
	if v.ImageWidth <= 0 || v.ImageHeight <= 0 {
		return question.Point{}
	}
	s := v.Scale()
	return question.Point{
		X: (v.WidgetWidth - v.ImageWidth*s) / 2,
		Y: (v.WidgetHeight - v.ImageHeight*s) / 2,
	}
}

// ToImage converts a widget position to image coordinates.
func (v Viewport) ToImage(p question.Point) question.Point {
	s, off := v.Scale(), v.Offset()
	return question.Point{X: (p.X - off.X) / s, Y: (p.Y - off.Y) / s}
}

// ToWidget converts an image position to widget coordinates.
func (v Viewport) ToWidget(p question.Point) question.Point {
	s, off := v.Scale(), v.Offset()
	return question.Point{X: p.X*s + off.X, Y: p.Y*s + off.Y}
}
