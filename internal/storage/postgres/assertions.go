package postgres

import "github.com/tinoosan/merchants/internal/service/merchant"

var (
    _ merchant.Repo   = (*Store)(nil)
    _ merchant.Writer = (*Store)(nil)
)
