package wishform

import (
	"github.com/goliatone/go-wishform/pkg/contract"
	pkgopenapi "github.com/goliatone/go-wishform/pkg/openapi"
)

// NewLoader constructs a contract document loader while keeping the concrete
// type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return contract.NewLoader(options...)
}

// NewParser constructs an operation parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return contract.NewParser(options...)
}
