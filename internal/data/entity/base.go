package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by rows that are edited in place. Users and apps are
// never hard deleted; users carry their own deleted flag instead.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseNoDelete is used by reviews, which are removed outright.
type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is for append-only rows such as sessions, threads and notes.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
