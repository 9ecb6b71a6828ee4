package ports

// Actor is the request-scoped identity passed explicitly into every core
// call that needs authorization, materialised from session claims by the
// transport layer.
type Actor struct {
	UserID int64
	Role   string
}
