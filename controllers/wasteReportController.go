package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecowastehunt-be/config"
	"ecowastehunt-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var reportCollection *mongo.Collection = config.GetCollection("waste_reports")
var voteCollection *mongo.Collection = config.GetCollection("waste_report_votes")

// earth radius in meters, used to turn a radius into radians for $centerSphere
const earthRadiusM = 6378100.0

type locationInput struct {
	Address     string     `json:"address" binding:"required"`
	City        string     `json:"city"`
	District    string     `json:"district"`
	Ward        string     `json:"ward"`
	Coordinates [2]float64 `json:"coordinates"`
}

// CreateWasteReport persists a new report in status pending. Images must
// already be hosted URLs; the upload endpoint runs before this one.
func CreateWasteReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reportedBy, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Title       string        `json:"title" binding:"required,max=100"`
		Description string        `json:"description" binding:"required,max=500"`
		Location    locationInput `json:"location" binding:"required"`
		WasteType   string        `json:"wasteType" binding:"required,wastetype"`
		Severity    string        `json:"severity"`
		Priority    *int          `json:"priority"`
		Tags        []string      `json:"tags"`
		Images      []string      `json:"images" binding:"required,min=1,max=5"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	address := strings.TrimSpace(input.Location.Address)
	if title == "" || description == "" || address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, description and address must not be blank"})
		return
	}

	severity := models.SeverityLevel(strings.ToLower(input.Severity))
	if input.Severity != "" && !severity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
		return
	}

	priority := 5
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority < 1 || priority > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be between 1 and 10"})
		return
	}

	// order-preserving tag dedupe
	var tags []string
	seen := map[string]bool{}
	for _, tag := range input.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	now := time.Now()
	report := models.WasteReport{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Description:  description,
		WasteType:    models.WasteType(strings.ToLower(input.WasteType)),
		Severity:     severity,
		SeverityRank: severity.Rank(),
		Tags:         tags,
		Priority:     priority,
		Location: models.Location{
			Address:     address,
			Ward:        strings.TrimSpace(input.Location.Ward),
			District:    strings.TrimSpace(input.Location.District),
			City:        strings.TrimSpace(input.Location.City),
			Coordinates: input.Location.Coordinates,
		},
		Images:     input.Images,
		Status:     models.StatusPending,
		ReportedBy: reportedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := reportCollection.InsertOne(ctx, report); err != nil {
		log.WithError(err).Error("inserting waste report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report created",
		"data":    report,
	})
}

// GetMyWasteReports lists the caller's reports with filtering, free-text
// search, sorting and page/limit pagination.
func GetMyWasteReports(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reportedBy, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{"reportedBy": reportedBy}

	if status := c.Query("status"); status != "" {
		filter["status"] = strings.ToLower(status)
	}
	if wasteType := c.Query("wasteType"); wasteType != "" {
		filter["wasteType"] = strings.ToLower(wasteType)
	}
	if severity := c.Query("severity"); severity != "" {
		filter["severity"] = strings.ToLower(severity)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"location.address": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	sortField := "createdAt"
	switch c.DefaultQuery("sortBy", "createdAt") {
	case "priority":
		sortField = "priority"
	case "severity":
		sortField = "severityRank"
	}
	sortDir := -1
	if c.DefaultQuery("sortOrder", "desc") == "asc" {
		sortDir = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := reportCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count reports"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}, {Key: "_id", Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := reportCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
		return
	}
	defer cursor.Close(ctx)

	reports := make([]models.WasteReport, 0, limit)
	if err := cursor.All(ctx, &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    reports,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetWasteReport returns one report and bumps its view counter.
func GetWasteReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	after := options.After
	var report models.WasteReport
	err = reportCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": reportID},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	userVote := models.VoteNone
	if userIDStr, exists := c.Get("user_id"); exists {
		if currentUserID, err := primitive.ObjectIDFromHex(userIDStr.(string)); err == nil {
			var vote models.ReportVote
			err := voteCollection.FindOne(ctx, bson.M{
				"report": reportID,
				"user":   currentUserID,
			}).Decode(&vote)
			if err == nil {
				userVote = vote.VoteType
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "OK",
		"data":     report,
		"userVote": userVote,
	})
}

// VoteOnWasteReport reconciles the caller's vote with the requested state.
// voteType "none" retracts; repeating the current state is a no-op, so the
// endpoint is safe to retry.
func VoteOnWasteReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	voter, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		VoteType string `json:"voteType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	desired := models.VoteType(strings.ToLower(input.VoteType))
	if !desired.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var report models.WasteReport
	if err := reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	current := models.VoteNone
	var existing models.ReportVote
	voteFilter := bson.M{"report": reportID, "user": voter}
	if err := voteCollection.FindOne(ctx, voteFilter).Decode(&existing); err == nil {
		current = existing.VoteType
	}

	if current != desired {
		inc := bson.M{}
		switch current {
		case models.VoteUp:
			inc["upvotes"] = -1
		case models.VoteDown:
			inc["downvotes"] = -1
		}
		switch desired {
		case models.VoteUp:
			inc["upvotes"] = 1
		case models.VoteDown:
			inc["downvotes"] = 1
		}

		if desired == models.VoteNone {
			if _, err := voteCollection.DeleteOne(ctx, voteFilter); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote"})
				return
			}
		} else {
			now := time.Now()
			upsert := true
			_, err := voteCollection.UpdateOne(ctx, voteFilter,
				bson.M{
					"$set":         bson.M{"voteType": desired, "updatedAt": now},
					"$setOnInsert": bson.M{"report": reportID, "user": voter, "createdAt": now},
				},
				&options.UpdateOptions{Upsert: &upsert},
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
				return
			}
		}

		if len(inc) > 0 {
			_, err = reportCollection.UpdateOne(ctx,
				bson.M{"_id": reportID},
				bson.M{"$inc": inc, "$set": bson.M{"updatedAt": time.Now()}},
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vote counters"})
				return
			}
		}
	}

	var updated models.WasteReport
	if err := reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote recorded",
		"upvotes":   updated.Upvotes,
		"downvotes": updated.Downvotes,
		"userVote":  desired,
	})
}

// GetNearbyWasteReports returns reports within radius meters of a point.
func GetNearbyWasteReports(c *gin.Context) {
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return
	}
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return
	}
	radius := 1000.0
	if v := c.Query("radius"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			radius = r
		}
	}

	filter := bson.M{
		"location.coordinates": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []interface{}{
					[]float64{longitude, latitude},
					radius / earthRadiusM,
				},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(100)

	cursor, err := reportCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve nearby reports"})
		return
	}
	defer cursor.Close(ctx)

	reports := make([]models.WasteReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    reports,
	})
}
