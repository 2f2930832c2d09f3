package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// BootstrapAdmin seeds the admin account on first start. The hash comes from
// env (ADMIN_PASS_HASH, bcrypt); an existing row always wins.
func BootstrapAdmin(ctx context.Context, db *sql.DB, username, passHash string) error {
	if username == "" || passHash == "" {
		return nil
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at)
		 VALUES ($1, $2, $3, 'admin', $4)
		 ON CONFLICT (username) DO NOTHING`,
		uuid.NewString(), username, passHash, time.Now().Unix(),
	)
	return err
}
