package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/RKATechSolutions/crane-care/internal/domain/asset"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AssetStore struct {
	q querier
}

func NewAssetStore(db *DB) *AssetStore { return &AssetStore{q: db.Pool} }

func (s *AssetStore) List(ctx context.Context, clientID int64) ([]asset.Asset, error) {
	q := `SELECT a.id, COALESCE(a.client_id, 0), a.name, COALESCE(a.serial, ''),
	             COALESCE(a.make, ''), COALESCE(a.model, ''), COALESCE(a.location, ''),
	             COALESCE(c.name, ''), a.last_inspected
	      FROM assets a LEFT JOIN clients c ON c.id = a.client_id`
	args := []interface{}{}
	if clientID > 0 {
		q += ` WHERE a.client_id = $1`
		args = append(args, clientID)
	}
	q += ` ORDER BY a.name`

	rows, err := s.q.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []asset.Asset
	for rows.Next() {
		var a asset.Asset
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Name, &a.Serial, &a.Make, &a.Model,
			&a.Location, &a.ClientName, &a.LastInspected); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert inserts or refreshes an asset keyed by serial when present, by
// client and name otherwise. Bulk imports re-run safely either way.
func (s *AssetStore) Upsert(ctx context.Context, a asset.Asset) (int64, error) {
	clientID := a.ClientID
	if clientID == 0 && strings.TrimSpace(a.ClientName) != "" {
		id, err := s.ensureClient(ctx, a.ClientName)
		if err != nil {
			return 0, err
		}
		clientID = id
	}

	if strings.TrimSpace(a.Serial) == "" {
		return s.upsertByName(ctx, a, clientID)
	}

	var id int64
	err := s.q.QueryRow(ctx,
		`INSERT INTO assets (client_id, name, serial, make, model, location, last_inspected)
		 VALUES (NULLIF($1, 0), $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		 ON CONFLICT (serial) WHERE serial IS NOT NULL DO UPDATE SET
		   client_id = EXCLUDED.client_id,
		   name = EXCLUDED.name,
		   make = EXCLUDED.make,
		   model = EXCLUDED.model,
		   location = EXCLUDED.location,
		   last_inspected = COALESCE(EXCLUDED.last_inspected, assets.last_inspected)
		 RETURNING id`,
		clientID, a.Name, a.Serial, a.Make, a.Model, a.Location, a.LastInspected,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert asset %q: %w", a.Name, err)
	}
	return id, nil
}

// upsertByName covers rows with no serial: the partial unique index on serial
// never arbitrates for them, so match on client and name explicitly before
// falling back to an insert.
func (s *AssetStore) upsertByName(ctx context.Context, a asset.Asset, clientID int64) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx,
		`UPDATE assets SET
		   make = NULLIF($3, ''),
		   model = NULLIF($4, ''),
		   location = NULLIF($5, ''),
		   last_inspected = COALESCE($6, last_inspected)
		 WHERE serial IS NULL AND name = $2 AND client_id IS NOT DISTINCT FROM NULLIF($1, 0)
		 RETURNING id`,
		clientID, a.Name, a.Make, a.Model, a.Location, a.LastInspected,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("update asset %q: %w", a.Name, err)
	}

	err = s.q.QueryRow(ctx,
		`INSERT INTO assets (client_id, name, make, model, location, last_inspected)
		 VALUES (NULLIF($1, 0), $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
		 RETURNING id`,
		clientID, a.Name, a.Make, a.Model, a.Location, a.LastInspected,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert asset %q: %w", a.Name, err)
	}
	return id, nil
}

func (s *AssetStore) ensureClient(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx,
		`INSERT INTO clients (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, strings.TrimSpace(name),
	).Scan(&id)
	return id, err
}

type ClientStore struct {
	db *DB
}

func NewClientStore(db *DB) *ClientStore { return &ClientStore{db: db} }

func (s *ClientStore) List(ctx context.Context) ([]asset.Client, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, name, COALESCE(address, ''), COALESCE(contact, ''),
		        COALESCE(email, ''), COALESCE(phone, '')
		 FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []asset.Client
	for rows.Next() {
		var c asset.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Contact, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
