package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

func newCategoryFixture() (*CategoryService, *stubCategoryRepo, *stubArticleRepo) {
	categories := newStubCategoryRepo()
	articles := newStubArticleRepo()
	svc := NewCategoryService(categories, articles, zerolog.Nop())
	return svc, categories, articles
}

func TestCategoryService_Create_Success(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	node, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "  Tech  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if node.ID == "" {
		t.Fatalf("expected generated id")
	}
	if node.Name != "Tech" {
		t.Fatalf("expected trimmed name, got %q", node.Name)
	}
	if node.ParentID != nil {
		t.Fatalf("expected top-level category")
	}
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	svc, categories, _ := newCategoryFixture()
	seedCategory(categories, "cat-1", "Tech", nil)

	_, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Tech"})
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCategoryService_Create_MissingParent(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	ghost := "ghost"
	_, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "Sub", ParentID: &ghost})
	if domain.KindOf(err) != domain.KindUnprocessable {
		t.Fatalf("expected unprocessable for missing parent, got %v", err)
	}
}

func TestCategoryService_Create_BlankName(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	_, err := svc.Create(context.Background(), ports.CreateCategoryInput{Name: "   "})
	if domain.KindOf(err) != domain.KindUnprocessable {
		t.Fatalf("expected unprocessable for blank name, got %v", err)
	}
}

func TestCategoryService_ListTopLevel_TwoLevelTree(t *testing.T) {
	svc, categories, _ := newCategoryFixture()
	top := "cat-top"
	child := "cat-child"
	seedCategory(categories, top, "Top", nil)
	seedCategory(categories, child, "Child", &top)
	seedCategory(categories, "cat-grand", "Grandchild", &child)

	nodes, err := svc.ListTopLevel(context.Background())
	if err != nil {
		t.Fatalf("ListTopLevel returned error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].ID != top {
		t.Fatalf("unexpected top-level nodes: %+v", nodes)
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].ID != child {
		t.Fatalf("expected one child, got %+v", nodes[0].Children)
	}
	grand := nodes[0].Children[0].Children
	if len(grand) != 1 || grand[0].ID != "cat-grand" {
		t.Fatalf("expected grandchild attached, got %+v", grand)
	}
	if len(grand[0].Children) != 0 {
		t.Fatalf("tree must stop at two levels below top")
	}
}

func TestCategoryService_ListTopLevel_Empty(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	nodes, err := svc.ListTopLevel(context.Background())
	if err != nil {
		t.Fatalf("ListTopLevel returned error: %v", err)
	}
	if nodes == nil || len(nodes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", nodes)
	}
}

func TestCategoryService_Get_WithImmediateChildren(t *testing.T) {
	svc, categories, _ := newCategoryFixture()
	top := "cat-top"
	child := "cat-child"
	seedCategory(categories, top, "Top", nil)
	seedCategory(categories, child, "Child", &top)
	seedCategory(categories, "cat-grand", "Grandchild", &child)

	node, err := svc.Get(context.Background(), top)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(node.Children) != 1 || node.Children[0].ID != child {
		t.Fatalf("expected immediate children only, got %+v", node.Children)
	}
	if len(node.Children[0].Children) != 0 {
		t.Fatalf("grandchildren must not be attached on Get")
	}
}

func TestCategoryService_Update(t *testing.T) {
	svc, categories, _ := newCategoryFixture()
	top := "cat-top"
	seedCategory(categories, top, "Top", nil)
	seedCategory(categories, "cat-2", "Other", nil)

	parent := "cat-2"
	node, err := svc.Update(context.Background(), top, ports.UpdateCategoryInput{Name: " Renamed ", ParentID: &parent})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if node.Name != "Renamed" {
		t.Fatalf("expected trimmed rename, got %q", node.Name)
	}
	if node.ParentID == nil || *node.ParentID != parent {
		t.Fatalf("parent not applied: %+v", node.ParentID)
	}

	ghost := "ghost"
	if _, err := svc.Update(context.Background(), top, ports.UpdateCategoryInput{Name: "X", ParentID: &ghost}); domain.KindOf(err) != domain.KindUnprocessable {
		t.Fatalf("expected unprocessable for missing parent, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", ports.UpdateCategoryInput{Name: "X"}); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	if err := svc.Delete(context.Background(), "missing"); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCategoryService_ListArticles(t *testing.T) {
	svc, categories, articles := newCategoryFixture()
	parent := "cat-parent"
	child := "cat-child"
	seedCategory(categories, parent, "Parent", nil)
	seedCategory(categories, child, "Child", &parent)
	seedArticle(articles, "a-1", parent, "user-1", 3, false)
	seedArticle(articles, "a-2", child, "user-1", 4, true)
	seedArticle(articles, "a-3", "cat-elsewhere", "user-1", 5, false)

	records, err := svc.ListArticles(context.Background(), parent)
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.CategoryID != parent && r.CategoryID != child {
			t.Fatalf("unexpected record: %+v", r)
		}
	}

	if _, err := svc.ListArticles(context.Background(), "ghost"); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found for missing category, got %v", err)
	}
}
