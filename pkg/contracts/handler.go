package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Stopper is a background worker that must be stopped on shutdown.
type Stopper interface {
	Stop()
}
