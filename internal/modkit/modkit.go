package modkit

import "einwurf/internal/modkit/module"

// Module is the common surface for modules that can mount routes and expose ports
// it aliases module.Module so either import works at call sites
type Module = module.Module
