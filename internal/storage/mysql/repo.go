package mysql

import (
	"context"
	"database/sql"
	"strings"

	"ratewatch/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertComparison(ctx context.Context, c domain.Comparison) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertComparisonSQL,
		c.HotelName,
		c.Location,
		c.CheckIn.Format("2006-01-02"),
		c.CheckOut.Format("2006-01-02"),
		valInt(c.StarRating),
		valStr(c.Description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ReplaceObservations(ctx context.Context, comparisonID int64, obs []domain.PriceObservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteObservationsSQL, comparisonID); err != nil {
		return err
	}
	if len(obs) > 0 {
		values := make([]string, 0, len(obs))
		args := make([]any, 0, len(obs)*7)
		for _, o := range obs {
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args,
				comparisonID,
				o.Platform,
				o.PricePerNight,
				o.TotalPrice,
				o.Currency,
				valStr(o.ScreenshotURL),
				valJSON(o.ExtractedJSON),
			)
		}
		sqlStr := insertObservationsPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) LogMiss(ctx context.Context, platform, location, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, platform, location, reason)
	return err
}

func (r *Repo) GetComparison(ctx context.Context, id int64) (domain.Comparison, error) {
	row := r.db.QueryRowContext(ctx, getComparisonSQL, id)
	c, err := scanComparison(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Comparison{}, domain.ErrNotFound
		}
		return domain.Comparison{}, err
	}

	rows, err := r.db.QueryContext(ctx, getObservationsSQL, id)
	if err != nil {
		return domain.Comparison{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o          domain.PriceObservation
			currency   sql.NullString
			screenshot sql.NullString
			extracted  sql.RawBytes
		)
		if err := rows.Scan(
			&o.ID,
			&o.ComparisonID,
			&o.Platform,
			&o.PricePerNight,
			&o.TotalPrice,
			&currency,
			&screenshot,
			&extracted,
		); err != nil {
			return domain.Comparison{}, err
		}
		if currency.Valid {
			o.Currency = currency.String
		}
		if screenshot.Valid {
			s := screenshot.String
			o.ScreenshotURL = &s
		}
		if len(extracted) > 0 {
			o.ExtractedJSON = append([]byte(nil), extracted...)
		}
		c.Observations = append(c.Observations, o)
	}
	if err := rows.Err(); err != nil {
		return domain.Comparison{}, err
	}
	return c, nil
}

func (r *Repo) ListComparisons(ctx context.Context, q domain.ComparisonsQuery) (domain.ComparisonsPage, error) {
	rows, err := r.db.QueryContext(ctx, listComparisonsSQL, q.Limit)
	if err != nil {
		return domain.ComparisonsPage{}, err
	}
	defer rows.Close()

	var out []domain.Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return domain.ComparisonsPage{}, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return domain.ComparisonsPage{}, err
	}
	return domain.ComparisonsPage{Items: out}, nil
}

type rowScanner interface {
	Scan(dst ...any) error
}

func scanComparison(row rowScanner) (domain.Comparison, error) {
	var (
		c                 domain.Comparison
		checkIn, checkOut sql.NullTime // DATE columns; DSN uses parseTime
		stars             sql.NullInt64
		desc              sql.NullString
	)
	if err := row.Scan(&c.ID, &c.HotelName, &c.Location, &checkIn, &checkOut, &stars, &desc); err != nil {
		return domain.Comparison{}, err
	}
	c.CheckIn = checkIn.Time
	c.CheckOut = checkOut.Time
	if stars.Valid {
		s := int(stars.Int64)
		c.StarRating = &s
	}
	if desc.Valid {
		d := desc.String
		c.Description = &d
	}
	return c, nil
}
