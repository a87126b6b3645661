package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WasteType enum (canonical lower-case keys)
type WasteType string

const (
	WasteBulky          WasteType = "bulky"
	WasteConstruction   WasteType = "construction"
	WasteElectronic     WasteType = "electronic"
	WasteGeneral        WasteType = "general"
	WasteHazardous      WasteType = "hazardous"
	WasteIllegalDumping WasteType = "illegal_dumping"
	WasteMedical        WasteType = "medical"
	WasteMixed          WasteType = "mixed"
	WasteOrganic        WasteType = "organic"
	WasteRecyclable     WasteType = "recyclable"
)

// WasteTypes lists every valid waste type.
var WasteTypes = []WasteType{
	WasteBulky, WasteConstruction, WasteElectronic, WasteGeneral,
	WasteHazardous, WasteIllegalDumping, WasteMedical, WasteMixed,
	WasteOrganic, WasteRecyclable,
}

func (t WasteType) Valid() bool {
	for _, known := range WasteTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ReportStatus enum
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusAssigned   ReportStatus = "assigned"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
	StatusVerified   ReportStatus = "verified"
	StatusDuplicate  ReportStatus = "duplicate"
	StatusInvalid    ReportStatus = "invalid"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusResolved,
		StatusRejected, StatusVerified, StatusDuplicate, StatusInvalid:
		return true
	}
	return false
}

// SeverityLevel enum
type SeverityLevel string

const (
	SeverityLow      SeverityLevel = "low"
	SeverityMedium   SeverityLevel = "medium"
	SeverityHigh     SeverityLevel = "high"
	SeverityCritical SeverityLevel = "critical"
)

func (s SeverityLevel) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rank orders severities for sorting; unknown/empty severities rank lowest.
func (s SeverityLevel) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// Location holds the postal address plus a [longitude, latitude] pair.
// The coordinate order matches GeoJSON so the pair can carry a 2dsphere index.
type Location struct {
	Address     string     `bson:"address" json:"address"`
	Ward        string     `bson:"ward,omitempty" json:"ward,omitempty"`
	District    string     `bson:"district,omitempty" json:"district,omitempty"`
	City        string     `bson:"city,omitempty" json:"city,omitempty"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

// Resolution is filled in only when a report reaches the resolved status.
type Resolution struct {
	ResolutionNote   string             `bson:"resolutionNote" json:"resolutionNote"`
	ResolvedBy       primitive.ObjectID `bson:"resolvedBy" json:"resolvedBy"`
	ResolvedAt       time.Time          `bson:"resolvedAt" json:"resolvedAt"`
	EstimatedWeight  *float64           `bson:"estimatedWeight,omitempty" json:"estimatedWeight,omitempty"`
	ProcessingCost   *float64           `bson:"processingCost,omitempty" json:"processingCost,omitempty"`
	ResolutionImages []string           `bson:"resolutionImages,omitempty" json:"resolutionImages,omitempty"`
}

// AIClassification is produced by an external model; read-only here.
type AIClassification struct {
	DetectedTypes []string  `bson:"detectedTypes" json:"detectedTypes"`
	Confidence    float64   `bson:"confidence" json:"confidence"`
	ModelVersion  string    `bson:"modelVersion,omitempty" json:"modelVersion,omitempty"`
	ProcessedAt   time.Time `bson:"processedAt" json:"processedAt"`
}

// WasteReport represents a citizen-submitted waste incident
type WasteReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	WasteType   WasteType          `bson:"wasteType" json:"wasteType"`
	Severity    SeverityLevel      `bson:"severity,omitempty" json:"severity,omitempty"`
	// SeverityRank is denormalized so "sortBy=severity" is a plain index sort.
	SeverityRank     int                 `bson:"severityRank" json:"-"`
	Tags             []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	Priority         int                 `bson:"priority" json:"priority"`
	Location         Location            `bson:"location" json:"location"`
	Images           []string            `bson:"images" json:"images"`
	Status           ReportStatus        `bson:"status" json:"status"`
	AssignedTo       *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedAt       *time.Time          `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	Resolution       *Resolution         `bson:"resolution,omitempty" json:"resolution,omitempty"`
	Upvotes          int                 `bson:"upvotes" json:"upvotes"`
	Downvotes        int                 `bson:"downvotes" json:"downvotes"`
	ViewCount        int                 `bson:"viewCount" json:"viewCount"`
	AIClassification *AIClassification   `bson:"aiClassification,omitempty" json:"aiClassification,omitempty"`
	ReportedBy       primitive.ObjectID  `bson:"reportedBy" json:"reportedBy"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
