// Package output provides a service for rendering results to the console.
package output

import (
	"github.com/petcollar/fwrename/model"
)

// NewService creates a new output service with the specified format
func NewService(format string) Service {
	return newService(format, &realRenderer{})
}

func newService(format string, renderer Renderer) *service {
	f := FormatTable
	if format == "json" {
		f = FormatJSON
	}

	return &service{
		format:   f,
		renderer: renderer,
	}
}

func (s *service) RenderPublish(input model.RenderPublishInput) error {
	s.StopSpinner()
	if s.format == FormatJSON {
		return s.renderer.OutputPublishJSON(input)
	}
	s.renderer.DrawPublishTable(input)
	return nil
}

// StartSpinner starts the progress spinner. JSON output never spins.
func (s *service) StartSpinner() {
	if s.format == FormatJSON || s.spinning {
		return
	}
	s.spinning = true
	s.renderer.StartSpinner()
}

func (s *service) StopSpinner() {
	if !s.spinning {
		return
	}
	s.spinning = false
	s.renderer.StopSpinner()
}
