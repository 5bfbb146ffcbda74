package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/knowhub/sectiond/internal/fetch"
	"github.com/knowhub/sectiond/internal/section"
	"github.com/knowhub/sectiond/internal/store"
)

// Worker processes one import job at a time.
type Worker struct {
	fetcher *fetch.Client
	store   *store.Store
	log     *slog.Logger
}

func NewWorker(fetcher *fetch.Client, st *store.Store, log *slog.Logger) *Worker {
	return &Worker{fetcher: fetcher, store: st, log: log}
}

// Process runs the import phases for a job: fetch, parse, store. Any phase
// error fails the whole job; nothing partial reaches the store.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "url", job.URL, "scope", job.Scope)

	job.SetStatus(StatusFetching)
	page, err := w.fetcher.FetchPage(ctx, job.URL)
	if err != nil {
		log.Error("fetch failed", "error", err)
		job.Fail(err.Error())
		return
	}

	job.SetStatus(StatusParsing)
	tree, err := section.ParseHTML(strings.NewReader(page), job.URL, section.Options{
		StartMarker: job.StartMarker,
		EndMarker:   job.EndMarker,
	})
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail(err.Error())
		return
	}

	job.SetStatus(StatusStoring)
	pageID, err := w.store.CreateTree(ctx, job.Scope, job.URL, tree)
	if err != nil {
		log.Error("store failed", "error", err)
		job.Fail(err.Error())
		return
	}

	log.Info("import completed", "page_id", pageID, "sections", tree.Len())
	job.Complete(pageID.String())
}
