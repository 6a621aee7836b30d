package memory

import "github.com/tinoosan/merchants/internal/service/merchant"

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ merchant.Repo   = (*Store)(nil)
	_ merchant.Writer = (*Store)(nil)
)
