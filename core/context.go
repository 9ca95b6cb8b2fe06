package core

import (
	"context"

	"github.com/rs/zerolog"

	"garchvar/fit"
	r "garchvar/repos"
)

type ServiceContext struct {
	Context  context.Context
	Postgres *r.Postgres // nil when run history persistence is disabled
	Fitter   fit.Fitter
	Log      zerolog.Logger
}
