package output

import (
	"github.com/petcollar/fwrename/model"
	jsonoutput "github.com/petcollar/fwrename/shared/json_output"
	publishtable "github.com/petcollar/fwrename/shared/publish_table"
	"github.com/petcollar/fwrename/shared/spinner"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer defines the interface for drawing reports
type Renderer interface {
	DrawPublishTable(input model.RenderPublishInput)
	OutputPublishJSON(input model.RenderPublishInput) error
	StartSpinner()
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawPublishTable(input model.RenderPublishInput) {
	publishtable.DrawPublishTable(input)
}

func (r *realRenderer) OutputPublishJSON(input model.RenderPublishInput) error {
	return jsonoutput.OutputPublishJSON(input)
}

func (r *realRenderer) StartSpinner() {
	spinner.StartSpinner()
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

// service is the internal implementation
type service struct {
	format   Format
	renderer Renderer
	spinning bool
}

// Service defines the interface for output operations
type Service interface {
	RenderPublish(input model.RenderPublishInput) error
	StartSpinner()
	StopSpinner()
}
