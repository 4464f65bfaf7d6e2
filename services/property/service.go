// Package property persists scraped assessor records in sqlite and
// serves them back.
package property

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	"assessorscraper/lib/scrapers/assessor"
	"assessorscraper/lib/sqliteutil"
	"assessorscraper/services/property/db"
)

var tracer = otel.Tracer("services/property")

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	client *assessor.Client
}

// NewService opens (creating if needed) the property database at path
// and wires it to the given scraping client.
func NewService(path string, client *assessor.Client) (*Service, error) {
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return nil, err
	}
	return &Service{
		db:     database,
		qry:    db.New(database),
		client: client,
	}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

// ScrapeProperty fetches one property from the assessor site and
// stores it. Re-scraping an already stored property updates the
// record in place and replaces its child tables.
func (s *Service) ScrapeProperty(ctx context.Context, propertyid int64) (*assessor.RealProperty, error) {
	ctx, span := tracer.Start(ctx, "service:ScrapeProperty")
	defer span.End()

	record, err := s.client.Scrape(ctx, propertyid)
	if err != nil {
		return nil, err
	}
	if err := s.SaveProperty(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// SaveProperty writes a full record, children included, in one
// transaction.
func (s *Service) SaveProperty(ctx context.Context, record *assessor.RealProperty) error {
	ctx, span := tracer.Start(ctx, "service:SaveProperty")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	qtx := s.qry.WithTx(tx)

	localID, err := qtx.UpsertProperty(ctx, record)
	if err != nil {
		return err
	}
	if err := qtx.DeleteChildren(ctx, localID); err != nil {
		return err
	}
	for _, v := range record.Valuations {
		if err := qtx.InsertValuation(ctx, localID, v); err != nil {
			return fmt.Errorf("insert valuation: %w", err)
		}
	}
	for _, d := range record.Deeds {
		if err := qtx.InsertDeed(ctx, localID, d); err != nil {
			return fmt.Errorf("insert deed: %w", err)
		}
	}
	for _, p := range record.Permits {
		if err := qtx.InsertPermit(ctx, localID, p); err != nil {
			return fmt.Errorf("insert permit: %w", err)
		}
	}
	for _, b := range record.Buildings {
		if err := qtx.InsertBuilding(ctx, localID, b); err != nil {
			return fmt.Errorf("insert building: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(
		ctx, "saved property",
		"propertyid", record.PropertyID,
		"valuations", len(record.Valuations),
		"deeds", len(record.Deeds),
		"permits", len(record.Permits),
		"buildings", len(record.Buildings),
	)
	return nil
}

// GetProperty loads a stored record with all of its child lists.
// Returns sql.ErrNoRows if the property was never scraped.
func (s *Service) GetProperty(ctx context.Context, propertyid int64) (*assessor.RealProperty, error) {
	ctx, span := tracer.Start(ctx, "service:GetProperty")
	defer span.End()

	record, localID, err := s.qry.GetProperty(ctx, propertyid)
	if err != nil {
		return nil, err
	}
	record.Valuations, err = s.qry.ListValuations(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list valuations: %w", err)
	}
	record.Deeds, err = s.qry.ListDeeds(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list deeds: %w", err)
	}
	record.Permits, err = s.qry.ListPermits(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list permits: %w", err)
	}
	record.Buildings, err = s.qry.ListBuildings(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return record, nil
}
