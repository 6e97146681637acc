package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/emberworks/crewboard/internal/app/system/htmlsanitize"
	"github.com/emberworks/crewboard/internal/app/system/normalize"
	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("jobs")}
}

var (
	errBadJobType    = errors.New("unknown job type")
	errBadExperience = errors.New("unknown experience level")
)

// Create inserts a new posting. Counters always start at zero regardless
// of what the caller passes; only IncrementViews and IncrementApplications
// may change them afterwards.
func (s *Store) Create(ctx context.Context, j models.Job) (models.Job, error) {
	j.ID = primitive.NewObjectID()
	j.Title = normalize.Name(j.Title)
	j.TitleCI = text.Fold(j.Title)
	j.Agency = normalize.Name(j.Agency)
	j.Location = normalize.Name(j.Location)
	j.Description = htmlsanitize.Sanitize(j.Description)
	j.Requirements = htmlsanitize.SanitizeAll(j.Requirements)

	if !models.IsValidJobType(j.JobType) {
		return models.Job{}, errBadJobType
	}
	if j.ExperienceLevel != "" && !models.IsValidExperienceLevel(j.ExperienceLevel) {
		return models.Job{}, errBadExperience
	}

	j.Views = 0
	j.Applications = 0
	if j.PostedDate.IsZero() {
		j.PostedDate = time.Now()
	}

	if _, err := s.c.InsertOne(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

// Update holds the editable fields of a posting. Counters and the posted
// date are deliberately absent.
type Update struct {
	Title             string
	Agency            string
	Location          string
	PayRate           string
	JobType           string
	StartDate         time.Time
	EndDate           time.Time
	ExperienceLevel   string
	Description       string
	Requirements      []string
	ApplicationMethod string
	ContactEmail      string
	IsActive          bool
}

// Update rewrites the posting's editable fields. The update document
// never names views or applications, so an edit can't clobber counts
// accrued since the admin loaded the form.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if !models.IsValidJobType(upd.JobType) {
		return errBadJobType
	}
	if upd.ExperienceLevel != "" && !models.IsValidExperienceLevel(upd.ExperienceLevel) {
		return errBadExperience
	}

	title := normalize.Name(upd.Title)
	set := bson.M{
		"title":              title,
		"title_ci":           text.Fold(title),
		"agency":             normalize.Name(upd.Agency),
		"location":           normalize.Name(upd.Location),
		"pay_rate":           upd.PayRate,
		"job_type":           upd.JobType,
		"start_date":         upd.StartDate,
		"end_date":           upd.EndDate,
		"experience_level":   upd.ExperienceLevel,
		"description":        htmlsanitize.Sanitize(upd.Description),
		"requirements":       htmlsanitize.SanitizeAll(upd.Requirements),
		"application_method": upd.ApplicationMethod,
		"contact_email":      normalize.Email(upd.ContactEmail),
		"is_active":          upd.IsActive,
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetByID loads a posting by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var j models.Job
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return nil, err
	}
	return &j, nil
}

// GetByIDs loads the postings for the given ids, skipping any that no
// longer exist. Used by the bookmarks listing, where dangling saved ids
// are expected after admin deletions.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListActive returns every active posting. The query pipeline filters and
// sorts in memory, so the store hands back a plain snapshot.
func (s *Store) ListActive(ctx context.Context) ([]models.Job, error) {
	cur, err := s.c.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListAll returns every posting regardless of active state, newest first.
// Admin management only; the public listing always goes through ListActive.
func (s *Store) ListAll(ctx context.Context) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "posted_date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ToggleActive flips the posting's active flag and returns the new value.
func (s *Store) ToggleActive(ctx context.Context, id primitive.ObjectID) (bool, error) {
	j, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !j.IsActive
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": next}}); err != nil {
		return false, err
	}
	return next, nil
}

// IncrementViews bumps the posting's view counter by one.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// IncrementApplications bumps the posting's application counter by one.
func (s *Store) IncrementApplications(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"applications": 1}})
	return err
}

// Delete removes the posting document.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Counts returns the total and active posting counts for admin stats.
func (s *Store) Counts(ctx context.Context) (total, active int64, err error) {
	total, err = s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, err
	}
	active, err = s.c.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// EngagementTotals sums the view and application counters across every
// posting, active or not. Used by admin stats.
func (s *Store) EngagementTotals(ctx context.Context) (views, applications int64, err error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"views":        bson.M{"$sum": "$views"},
			"applications": bson.M{"$sum": "$applications"},
		}}},
	})
	if err != nil {
		return 0, 0, err
	}
	var rows []struct {
		Views        int64 `bson:"views"`
		Applications int64 `bson:"applications"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Views, rows[0].Applications, nil
}
