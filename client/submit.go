package client

import (
	"context"

	"ecowastehunt-be/models"

	"github.com/sirupsen/logrus"
)

// SubmissionPipeline turns a draft into a persisted report: validate, upload
// all images in one multipart request, then create the record referencing the
// hosted URLs. The two network phases are strictly sequential and the caller
// sees a single success or a single categorized failure.
type SubmissionPipeline struct {
	api *Client
	log *logrus.Logger
}

func NewSubmissionPipeline(api *Client, log *logrus.Logger) *SubmissionPipeline {
	if log == nil {
		log = logrus.New()
	}
	return &SubmissionPipeline{api: api, log: log}
}

// Submit validates and persists a draft. Failures are one of
// *ValidationError (no network call was made), *UploadError (no report was
// created) or *CreateError (images already uploaded stay orphaned on the
// media service; there is no compensating delete).
func (p *SubmissionPipeline) Submit(ctx context.Context, draft models.ReportDraft) (*models.WasteReport, error) {
	draft.Normalize()
	if errs := models.ValidateDraft(draft); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	uploaded, err := p.api.UploadWasteImages(ctx, draft.Images)
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	urls := make([]string, 0, len(uploaded))
	for _, img := range uploaded {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	if len(urls) == 0 {
		return nil, &UploadError{Err: ErrNoImages}
	}

	payload := CreateReportRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
		WasteType:   draft.WasteType,
		Severity:    draft.Severity,
		Priority:    draft.Priority,
		Tags:        draft.Tags,
		Images:      urls,
	}

	report, err := p.api.CreateWasteReport(ctx, payload)
	if err != nil {
		p.log.WithError(err).Warn("report creation failed after upload; uploaded images are orphaned")
		return nil, &CreateError{Err: err}
	}

	p.log.WithField("report_id", report.ID.Hex()).Info("report submitted")
	return report, nil
}
