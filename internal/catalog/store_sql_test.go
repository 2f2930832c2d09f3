package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/edupath/edupath-backend/internal/catalog"
	"github.com/edupath/edupath-backend/internal/db"
)

func openSQLStore(t *testing.T) *catalog.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return catalog.NewSQLStore(dbh)
}

func TestListCourses_NoLimitReturnsFullCatalog(t *testing.T) {
	ctx := context.Background()
	store := openSQLStore(t)

	for i := 1; i <= 120; i++ {
		c := catalog.Course{ID: fmt.Sprintf("c-%03d", i), Title: fmt.Sprintf("Course %d", i), Level: catalog.LevelBeginner}
		if i == 110 {
			c.Categories = []catalog.Category{{Name: "algebra", IsPrimary: true}}
		}
		if err := store.PutCourse(ctx, c); err != nil {
			t.Fatalf("put course %d: %v", i, err)
		}
	}

	// the scorer calls with no limit and must see every course
	all, err := store.ListCourses(ctx, catalog.CourseListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 120 {
		t.Fatalf("expected full catalog of 120, got %d", len(all))
	}

	// the category filter must find matches anywhere in the catalog
	got, err := store.ListCourses(ctx, catalog.CourseListOpts{Category: "algebra"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c-110" {
		t.Fatalf("expected [c-110], got %+v", got)
	}
}

func TestListCourses_PaginationAfterFilter(t *testing.T) {
	ctx := context.Background()
	store := openSQLStore(t)

	for i := 1; i <= 10; i++ {
		c := catalog.Course{ID: fmt.Sprintf("c-%02d", i), Title: fmt.Sprintf("Course %d", i), Level: catalog.LevelBeginner}
		if i%2 == 0 {
			c.Categories = []catalog.Category{{Name: "math"}}
		}
		if err := store.PutCourse(ctx, c); err != nil {
			t.Fatalf("put course %d: %v", i, err)
		}
	}

	// 5 math courses total; offset/limit slice the filtered set, not the scan
	got, err := store.ListCourses(ctx, catalog.CourseListOpts{Category: "math", Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c-04" || got[1].ID != "c-06" {
		t.Fatalf("expected [c-04 c-06], got %+v", got)
	}

	// offset past the end is an empty page, not an error
	got, err = store.ListCourses(ctx, catalog.CourseListOpts{Category: "math", Offset: 9})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %+v", got)
	}
}
