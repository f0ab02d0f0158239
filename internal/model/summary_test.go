package model

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestSummary_Reporting(t *testing.T) {
	s := Summary{
		Succeeded: []ItemResult{
			{Index: 1, ID: "A", OutputPath: "/tmp/out/My List/1 - A.mp4"},
			{Index: 3, ID: "C"},
		},
		Failed: []ItemResult{{Index: 2, ID: "B", Err: errors.New("boom")}},
	}

	if s.String() != "2 of 3 succeeded" {
		t.Errorf("unexpected summary string: %s", s.String())
	}
	if !reflect.DeepEqual(s.SucceededIDs(), []string{"A", "C"}) {
		t.Errorf("unexpected succeeded IDs: %v", s.SucceededIDs())
	}
	if !reflect.DeepEqual(s.FailedIDs(), []string{"B"}) {
		t.Errorf("unexpected failed IDs: %v", s.FailedIDs())
	}
	if !reflect.DeepEqual(s.OutputPaths(), []string{"/tmp/out/My List/1 - A.mp4"}) {
		t.Errorf("unexpected output paths: %v", s.OutputPaths())
	}
	if !s.IsPartial() {
		t.Error("expected partial summary")
	}
}

func TestDownloadError_KindMatching(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("resolve: %w", NewError(KindFilesystem, cause, "cannot create %s", "/root/x"))

	if !errors.Is(err, ErrFilesystem) {
		t.Error("expected errors.Is to match ErrFilesystem")
	}
	if errors.Is(err, ErrFetch) {
		t.Error("did not expect errors.Is to match ErrFetch")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if KindOf(err) != KindFilesystem {
		t.Errorf("KindOf = %s, expected %s", KindOf(err), KindFilesystem)
	}
	if KindOf(cause) != KindNone {
		t.Errorf("KindOf(plain error) = %s, expected empty", KindOf(cause))
	}
}

func TestItemShape_Matches(t *testing.T) {
	single := SingleShape(Member{ID: "video"})
	info := &CollectionInfo{Title: "My List"}
	info.AddMember(Member{ID: "A"})
	info.AddMember(Member{ID: "B"})
	collection := CollectionShape(info)

	if !single.Matches(KindSingleItem) || single.Matches(KindCollection) {
		t.Error("single shape matched the wrong kind")
	}
	if !collection.Matches(KindCollection) || collection.Matches(KindSingleItem) {
		t.Error("collection shape matched the wrong kind")
	}
	if info.Members[1].Index != 2 {
		t.Errorf("expected second member index 2, got %d", info.Members[1].Index)
	}
	if n, _ := info.MemberCount.Get(); n != 2 {
		t.Errorf("expected member count 2, got %d", n)
	}
}
