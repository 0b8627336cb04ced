package assessdb

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/carbonex/footprint/internal/engine"
	"github.com/carbonex/footprint/internal/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const assessmentsTable = "assessments"

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// recordDetail is the JSONB payload holding the parts of a record
// that do not get their own column.
type recordDetail struct {
	EmissionsByScope engine.ScopeShares      `json:"emissions_by_scope"`
	Insights         []engine.Insight        `json:"insights"`
	Recommendations  []engine.Recommendation `json:"recommendations"`
	Scope1Results    []engine.EmissionResult `json:"scope1_results,omitempty"`
	Scope2Results    []engine.EmissionResult `json:"scope2_results,omitempty"`
	Scope3Results    []engine.EmissionResult `json:"scope3_results,omitempty"`
}

// Postgres stores assessments in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Close releases the underlying pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Migrate applies all pending schema migrations against url.
func Migrate(ctx context.Context, url string) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "assessdb").
		Str("operation", "migrate").
		Msg("applying schema migrations")

	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "assessdb").
		Msg("schema migrations applied")
	return nil
}

// SaveAssessment inserts the record.
func (p *Postgres) SaveAssessment(ctx context.Context, rec *Record) error {
	log := logging.FromContext(ctx)
	start := time.Now()

	detail, err := json.Marshal(recordDetail{
		EmissionsByScope: rec.Summary.EmissionsByScope,
		Insights:         rec.Insights,
		Recommendations:  rec.Recommendations,
		Scope1Results:    rec.Scope1Results,
		Scope2Results:    rec.Scope2Results,
		Scope3Results:    rec.Scope3Results,
	})
	if err != nil {
		return fmt.Errorf("encoding assessment detail: %w", err)
	}

	query, args, err := builder().
		Insert(assessmentsTable).
		Columns("id", "organization_name", "reporting_year", "region",
			"scope1_total", "scope2_total", "scope3_total",
			"total_emissions", "avg_confidence", "detail", "created_at").
		Values(rec.ID, rec.OrganizationName, rec.ReportingYear, rec.Region,
			rec.Summary.Scope1Total, rec.Summary.Scope2Total, rec.Summary.Scope3Total,
			rec.Summary.TotalEmissions, rec.Summary.AverageConfidence, detail, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building assessment insert: %w", err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "assessdb").
			Str("operation", "save").
			Str("assessment_id", rec.ID).
			Err(err).
			Msg("failed to save assessment")
		return fmt.Errorf("saving assessment %s: %w", rec.ID, err)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "assessdb").
		Str("operation", "save").
		Str("assessment_id", rec.ID).
		Str("organization", rec.OrganizationName).
		Dur("duration", time.Since(start)).
		Msg("assessment saved")
	return nil
}

// GetAssessment fetches a single record by ID.
func (p *Postgres) GetAssessment(ctx context.Context, id string) (*Record, error) {
	query, args, err := selectRecords().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building assessment query: %w", err)
	}

	rec, err := scanRecord(p.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading assessment %s: %w", id, err)
	}
	return rec, nil
}

// ListAssessments returns the most recent records, optionally scoped
// to one organization.
func (p *Postgres) ListAssessments(ctx context.Context, organization string, limit int) ([]*Record, error) {
	q := selectRecords().OrderBy("created_at DESC")
	if organization != "" {
		q = q.Where(sq.Eq{"organization_name": organization})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building assessment list query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assessment row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessment rows: %w", err)
	}
	return records, nil
}

func selectRecords() sq.SelectBuilder {
	return builder().
		Select("id", "organization_name", "reporting_year", "region",
			"scope1_total", "scope2_total", "scope3_total",
			"total_emissions", "avg_confidence", "detail", "created_at").
		From(assessmentsTable)
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var rawDetail []byte
	if err := row.Scan(&rec.ID, &rec.OrganizationName, &rec.ReportingYear, &rec.Region,
		&rec.Summary.Scope1Total, &rec.Summary.Scope2Total, &rec.Summary.Scope3Total,
		&rec.Summary.TotalEmissions, &rec.Summary.AverageConfidence,
		&rawDetail, &rec.CreatedAt); err != nil {
		return nil, err
	}

	var detail recordDetail
	if err := json.Unmarshal(rawDetail, &detail); err != nil {
		return nil, fmt.Errorf("decoding assessment detail: %w", err)
	}
	rec.Summary.EmissionsByScope = detail.EmissionsByScope
	rec.Insights = detail.Insights
	rec.Recommendations = detail.Recommendations
	rec.Scope1Results = detail.Scope1Results
	rec.Scope2Results = detail.Scope2Results
	rec.Scope3Results = detail.Scope3Results
	return &rec, nil
}
