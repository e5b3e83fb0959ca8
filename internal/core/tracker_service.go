package core

import (
	"context"

	"github.com/belac-fun/belac-backend/internal/store"
)

type TrackerStore interface {
	CreateEntry(ctx context.Context, food string, calories, protein float64) (*store.CalorieEntry, error)
	ListEntriesByDate(ctx context.Context, date string) ([]store.CalorieEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	Today() string
}

// DailyLog is one day of calorie entries with running totals.
type DailyLog struct {
	Date          string               `json:"date"`
	Entries       []store.CalorieEntry `json:"entries"`
	Count         int                  `json:"count"`
	TotalCalories float64              `json:"total_calories"`
	TotalProtein  float64              `json:"total_protein"`
}

type TrackerService struct {
	dbStore TrackerStore
}

func NewTrackerService(db TrackerStore) *TrackerService {
	return &TrackerService{dbStore: db}
}

// DailyLog returns the entries for date, or for today when date is empty.
func (s *TrackerService) DailyLog(ctx context.Context, date string) (*DailyLog, error) {
	if date == "" {
		date = s.dbStore.Today()
	}
	entries, err := s.dbStore.ListEntriesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	log := &DailyLog{Date: date, Entries: entries, Count: len(entries)}
	for _, e := range entries {
		log.TotalCalories += e.Calories
		log.TotalProtein += e.Protein
	}
	return log, nil
}

func (s *TrackerService) AddEntry(ctx context.Context, food string, calories, protein float64) (*store.CalorieEntry, error) {
	return s.dbStore.CreateEntry(ctx, food, calories, protein)
}

func (s *TrackerService) DeleteEntry(ctx context.Context, id string) error {
	return s.dbStore.DeleteEntry(ctx, id)
}
