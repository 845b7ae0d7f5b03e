package postgres

import (
	"context"
	"fmt"

	"github.com/RKATechSolutions/crane-care/internal/domain/inspection"
)

type InspectionStore struct {
	db *DB
}

func NewInspectionStore(db *DB) *InspectionStore { return &InspectionStore{db: db} }

func (s *InspectionStore) Create(ctx context.Context, ins inspection.Inspection) (int64, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO inspections (asset_id, technician, inspected_at, status, notes)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		ins.AssetID, ins.Technician, ins.Date, inspection.StatusOpen, ins.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert inspection: %w", err)
	}

	for _, d := range ins.Defects {
		_, err = tx.Exec(ctx,
			`INSERT INTO defects (inspection_id, description, severity, recommendation)
			 VALUES ($1, $2, $3, $4)`,
			id, d.Description, d.Severity, d.Recommendation,
		)
		if err != nil {
			return 0, fmt.Errorf("insert defect: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *InspectionStore) Get(ctx context.Context, id int64) (*inspection.Inspection, error) {
	var ins inspection.Inspection
	err := s.db.Pool.QueryRow(ctx,
		`SELECT id, asset_id, technician, inspected_at, status, notes, COALESCE(summary, '')
		 FROM inspections WHERE id = $1`, id,
	).Scan(&ins.ID, &ins.AssetID, &ins.Technician, &ins.Date, &ins.Status, &ins.Notes, &ins.Summary)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, description, severity, COALESCE(recommendation, '')
		 FROM defects WHERE inspection_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d inspection.Defect
		if err := rows.Scan(&d.ID, &d.Description, &d.Severity, &d.Recommendation); err != nil {
			return nil, err
		}
		ins.Defects = append(ins.Defects, d)
	}
	return &ins, rows.Err()
}

func (s *InspectionStore) List(ctx context.Context, assetID int64, limit int) ([]inspection.Inspection, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `SELECT id, asset_id, technician, inspected_at, status, notes, COALESCE(summary, '')
	      FROM inspections`
	args := []interface{}{}
	if assetID > 0 {
		q += ` WHERE asset_id = $1`
		args = append(args, assetID)
	}
	q += fmt.Sprintf(` ORDER BY inspected_at DESC LIMIT %d`, limit)

	rows, err := s.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inspection.Inspection
	for rows.Next() {
		var ins inspection.Inspection
		if err := rows.Scan(&ins.ID, &ins.AssetID, &ins.Technician, &ins.Date, &ins.Status, &ins.Notes, &ins.Summary); err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

func (s *InspectionStore) Complete(ctx context.Context, id int64, summary string) error {
	tag, err := s.db.Pool.Exec(ctx,
		`UPDATE inspections SET status = $1, summary = NULLIF($2, '') WHERE id = $3`,
		inspection.StatusCompleted, summary, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inspection %d not found", id)
	}
	return nil
}
