package service

import (
	"fmt"
	"strings"

	"goplanner/internal/domain/model"

	"github.com/google/uuid"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"

	newActivityName = "New activity"
)

// ItineraryEditor はドラフト旅程のアクティビティ編集を行う
// すべての操作の後に対象日のorderを1..Nに振り直す
type ItineraryEditor struct {
	newID func() string
}

func NewItineraryEditor() *ItineraryEditor {
	return &ItineraryEditor{newID: func() string { return uuid.NewString()[:8] }}
}

// AddActivity は指定日の末尾にアクティビティを追加する
func (e *ItineraryEditor) AddActivity(it *model.Itinerary, dayNumber int, req *model.AddActivityRequest) (*model.Activity, error) {
	day, err := it.Day(dayNumber)
	if err != nil {
		return nil, err
	}

	act := model.Activity{
		ID:       e.uniqueID(day),
		Time:     model.TimeCheckIn,
		Activity: newActivityName,
		Location: it.Destination,
		Type:     model.ActivitySightseeing,
	}
	if req != nil {
		if req.Time != "" {
			act.Time = req.Time
		}
		if req.Activity != "" {
			act.Activity = req.Activity
		}
		if req.Location != "" {
			act.Location = req.Location
		}
		if req.Type != "" {
			if !req.Type.IsValid() {
				return nil, fmt.Errorf("%s: %w", req.Type, model.ErrInvalidActivityType)
			}
			act.Type = req.Type
		}
		act.Notes = req.Notes
	}

	day.Activities = append(day.Activities, act)
	day.Renumber()
	return &day.Activities[len(day.Activities)-1], nil
}

// UpdateActivity は指定された項目だけを更新する
func (e *ItineraryEditor) UpdateActivity(it *model.Itinerary, dayNumber int, activityID string, req *model.UpdateActivityRequest) (*model.Activity, error) {
	day, err := it.Day(dayNumber)
	if err != nil {
		return nil, err
	}
	idx := day.IndexOf(activityID)
	if idx < 0 {
		return nil, model.ErrActivityNotFound
	}
	if req.Type != nil && !req.Type.IsValid() {
		return nil, fmt.Errorf("%s: %w", *req.Type, model.ErrInvalidActivityType)
	}

	act := &day.Activities[idx]
	if req.Time != nil {
		act.Time = *req.Time
	}
	if req.Activity != nil {
		act.Activity = *req.Activity
	}
	if req.Location != nil {
		act.Location = *req.Location
	}
	if req.Type != nil {
		act.Type = *req.Type
	}
	if req.Notes != nil {
		act.Notes = *req.Notes
	}

	day.Renumber()
	return act, nil
}

// DeleteActivity はアクティビティを削除する
func (e *ItineraryEditor) DeleteActivity(it *model.Itinerary, dayNumber int, activityID string) error {
	day, err := it.Day(dayNumber)
	if err != nil {
		return err
	}
	idx := day.IndexOf(activityID)
	if idx < 0 {
		return model.ErrActivityNotFound
	}

	day.Activities = append(day.Activities[:idx], day.Activities[idx+1:]...)
	day.Renumber()
	return nil
}

// Reorder は direction(up/down) で1つ移動するか、targetIdの位置へ移動する
// 範囲外への上下移動は何もしない
func (e *ItineraryEditor) Reorder(it *model.Itinerary, dayNumber int, req *model.ReorderRequest) error {
	day, err := it.Day(dayNumber)
	if err != nil {
		return err
	}
	from := day.IndexOf(req.ActivityID)
	if from < 0 {
		return model.ErrActivityNotFound
	}

	var to int
	switch {
	case req.TargetID != "":
		to = day.IndexOf(req.TargetID)
		if to < 0 {
			return model.ErrActivityNotFound
		}
	case strings.EqualFold(req.Direction, DirectionUp):
		to = from - 1
	case strings.EqualFold(req.Direction, DirectionDown):
		to = from + 1
	default:
		return fmt.Errorf("direction は up または down を指定してください: %w", model.ErrInvalidMove)
	}

	if to >= 0 && to < len(day.Activities) && to != from {
		day.Activities = arrayMove(day.Activities, from, to)
	}
	day.Renumber()
	return nil
}

// arrayMove は要素をfromからtoへ移動し、間の要素をずらす
func arrayMove(acts []model.Activity, from, to int) []model.Activity {
	moved := acts[from]
	out := make([]model.Activity, 0, len(acts))
	out = append(out, acts[:from]...)
	out = append(out, acts[from+1:]...)

	out = append(out[:to], append([]model.Activity{moved}, out[to:]...)...)
	return out
}

func (e *ItineraryEditor) uniqueID(day *model.DayPlan) string {
	for {
		id := fmt.Sprintf("%d-%s", day.DayNumber, e.newID())
		if day.IndexOf(id) < 0 {
			return id
		}
	}
}
