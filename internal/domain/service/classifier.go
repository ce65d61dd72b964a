// Package service defines contracts for the external collaborators the core
// consumes: the object classifier, the routing oracle, blob storage, the
// notification channel, and token validation.
package service

import "context"

// BoundingBox locates one detection inside the scanned image.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Detection is one labeled object returned by the classifier, with a
// confidence score in [0,1]. The classifier applies its minimum-confidence
// floor before results reach the pricing adapter.
type Detection struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"box"`
}

// ObjectClassifier detects e-waste objects in raw image bytes. Scanning is
// on the critical path: a classifier failure surfaces to the caller instead
// of degrading.
type ObjectClassifier interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}
