package feed

import (
	"testing"
	"time"

	"commentwidget/comments-widget/internal/app/widget/client"
	"commentwidget/comments-widget/internal/app/widget/i18n"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int {
	return &v
}

func testLocalizer(lang string) *i18n.Localizer {
	return i18n.MustNew(lang).WithLocation(time.UTC)
}

func TestRender_Loading(t *testing.T) {
	got := Render(StatusLoading, nil, testLocalizer("ru"))
	want := DisplayState{Kind: KindLoading, Message: "Загрузка комментариев..."}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Failed(t *testing.T) {
	got := Render(StatusFailed, nil, testLocalizer("en"))
	want := DisplayState{Kind: KindError, Message: "Failed to load comments. Please refresh the page."}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EmptyIsNotError(t *testing.T) {
	for _, comments := range [][]client.Comment{nil, {}} {
		got := Render(StatusLoaded, comments, testLocalizer("ru"))
		want := DisplayState{Kind: KindEmpty, Message: "Пока нет комментариев. Будьте первым!"}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Render() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRender_Populated(t *testing.T) {
	comments := []client.Comment{
		{ID: 2, UserName: "Alice", CommentText: "Great site", Rating: intPtr(5), CreatedAt: "2024-03-01 10:20:30"},
		{ID: 1, UserName: "", CommentText: "no stars", CreatedAt: "2024-02-29 23:05:00"},
		{ID: 0, UserName: "Eve", CommentText: "odd", Rating: intPtr(3), CreatedAt: "yesterday"},
	}

	got := Render(StatusLoaded, comments, testLocalizer("ru"))
	want := DisplayState{
		Kind: KindList,
		Items: []Item{
			{ID: 2, Author: "Alice", Date: "1 марта 2024 г. в 10:20", Rating: 5, Stars: "★★★★★", Text: "Great site"},
			{ID: 1, Author: "Аноним", Date: "29 февраля 2024 г. в 23:05", Text: "no stars"},
			{ID: 0, Author: "Eve", Date: "yesterday", Rating: 3, Stars: "★★★☆☆", Text: "odd"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OutOfRangeRatingShowsNoStars(t *testing.T) {
	comments := []client.Comment{
		{ID: 1, UserName: "Bob", CommentText: "zero", Rating: intPtr(0), CreatedAt: "2024-01-01 00:00:00"},
		{ID: 2, UserName: "Bob", CommentText: "six", Rating: intPtr(6), CreatedAt: "2024-01-01 00:00:00"},
	}

	got := Render(StatusLoaded, comments, testLocalizer("en"))

	for _, item := range got.Items {
		if item.Stars != "" || item.Rating != 0 {
			t.Errorf("item %d: expected no stars, got %q (%d)", item.ID, item.Stars, item.Rating)
		}
	}
}

func TestRender_EnglishDates(t *testing.T) {
	comments := []client.Comment{{ID: 1, UserName: "Ann", CommentText: "hi", Rating: intPtr(1), CreatedAt: "2024-12-05 07:09:00"}}

	got := Render(StatusLoaded, comments, testLocalizer("en"))

	if diff := cmp.Diff("December 5, 2024 at 07:09", got.Items[0].Date); diff != "" {
		t.Errorf("date mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("★☆☆☆☆", got.Items[0].Stars); diff != "" {
		t.Errorf("stars mismatch (-want +got):\n%s", diff)
	}
}
