package schema

// Known client surface names.
const (
	SurfaceAdmin      = "Admin"
	SurfaceStorefront = "Storefront"
)

// Surface pairs the old and new snapshots of one client schema.
type Surface struct {
	Name string
	Old  *Snapshot
	New  *Snapshot
}
