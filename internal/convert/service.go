// Package convert wires the conversion pipeline for one run: input rows
// through normalization, classification, VAT splitting and posting
// generation into the Beancount emitter.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ledgercast-dev/ledgercast/internal/accounts"
	"github.com/ledgercast-dev/ledgercast/internal/beancount"
	"github.com/ledgercast-dev/ledgercast/internal/config"
	"github.com/ledgercast-dev/ledgercast/internal/importer"
	"github.com/ledgercast-dev/ledgercast/internal/model"
	"github.com/ledgercast-dev/ledgercast/internal/normalize"
	"github.com/ledgercast-dev/ledgercast/internal/payment"
	"github.com/ledgercast-dev/ledgercast/internal/posting"
)

// Service owns one conversion session. All cross-row state (the customer
// key registry and the emitter's account set) lives here, never in
// package globals, so parallel file conversions stay independent.
type Service struct {
	cfg        *config.Config
	log        zerolog.Logger
	registry   *accounts.Registry
	normalizer *normalize.Normalizer
	generator  *posting.Generator
	parsers    *importer.Registry
}

// NewService builds a Service from a validated config.
func NewService(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rate, err := cfg.Rate()
	if err != nil {
		return nil, err
	}

	registry := accounts.NewRegistry(cfg.Roots())
	classifier := payment.New(cfg.Keywords.Cash, cfg.Keywords.Bank)

	return &Service{
		cfg:        cfg,
		log:        log,
		registry:   registry,
		normalizer: normalize.New(cfg.Currency, classifier),
		generator:  posting.NewGenerator(registry, rate),
		parsers:    importer.DefaultRegistry(cfg.Columns),
	}, nil
}

// Run converts raw records in order. Rejected rows are collected into the
// report; accepted rows become balanced transactions on the returned
// emitter, preserving relative input order.
func (s *Service) Run(records []model.RawRecord, source string) (*beancount.Emitter, *Report) {
	openDate, _ := s.cfg.OpeningDate() // validated in NewService
	emitter := beancount.NewEmitter(s.cfg.Currency, openDate, source)
	report := newReport()

	for _, rec := range records {
		txn, err := s.normalizer.Normalize(rec)
		if err != nil {
			var rej *normalize.RejectionError
			if errors.As(err, &rej) {
				s.log.Warn().Int("row", rej.Row).Str("reason", string(rej.Reason)).Msg(rej.Detail)
				report.reject(Rejection{
					Row:          rej.Row,
					Reason:       rej.Reason,
					Detail:       rej.Detail,
					Organization: rec.Organization,
					Amount:       rec.Amount,
					Date:         rec.Date,
					Note:         rec.Note,
				})
				continue
			}
			// Normalize only returns rejections; anything else is a bug.
			report.Internal = append(report.Internal, err.Error())
			continue
		}

		entry, err := s.generator.Generate(txn)
		if err != nil {
			// Unbalanced postings must never reach the output file.
			s.log.Error().Int("row", rec.Row).Err(err).Msg("aborting record")
			report.Internal = append(report.Internal, err.Error())
			continue
		}

		emitter.Add(entry)
		report.Accepted++
	}

	report.Collisions = s.registry.Collisions()
	for _, c := range report.Collisions {
		s.log.Warn().
			Str("key", string(c.Key)).
			Str("first", c.First).
			Str("second", c.Second).
			Msg("customer key collision")
	}
	return emitter, report
}

// ConvertFile runs the whole pipeline for one input file: parse, convert,
// write the ledger, and optionally write the reject audit CSV. Schema and
// I/O failures abort before any output is written.
func (s *Service) ConvertFile(inputPath, outputPath, rejectsPath string) (*Report, error) {
	parser, err := s.parsers.ForPath(inputPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	records, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("rows", len(records)).Str("format", parser.Format()).Msg("input loaded")

	emitter, report := s.Run(records, filepath.Base(inputPath))

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := emitter.WriteTo(out); err != nil {
		out.Close()
		return nil, fmt.Errorf("writing ledger: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing output: %w", err)
	}

	if rejectsPath != "" && len(report.Rejections) > 0 {
		if err := writeRejectsFile(rejectsPath, report.Rejections); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int("accepted", report.Accepted).
		Int("skipped", report.Skipped).
		Str("output", outputPath).
		Msg("conversion finished")
	return report, nil
}
