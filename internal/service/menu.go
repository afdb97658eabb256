package service

import (
	"strings"

	"github.com/greenmarket/fridgechef/internal/match"
	"github.com/greenmarket/fridgechef/internal/model"
)

// menuCourses maps each course of a themed menu to the dataset tags that
// qualify a recipe for it.
var menuCourses = []struct {
	Course string
	Tags   []string
}{
	{"appetizer", []string{"appetizers", "snacks", "finger-food"}},
	{"first course", []string{"pasta", "soups-stews", "rice"}},
	{"main course", []string{"main-dish", "one-dish-meal", "meat", "seafood"}},
	{"side dish", []string{"side-dishes", "salads", "vegetables"}},
	{"dessert", []string{"desserts"}},
}

// CourseSelection is the best candidate for one course of a themed menu.
// Recipe is nil when no themed recipe qualifies for the course.
type CourseSelection struct {
	Course string
	Recipe *model.Recipe
}

// Menu is a five-course composition restricted to one meal theme.
type Menu struct {
	Theme   string
	Courses []CourseSelection
}

// ThemeMenu validates the theme tag, restricts the table to recipes carrying
// it, and independently picks the best-ranked recipe for each course. Courses
// with no qualifying recipe stay empty without affecting the others.
func (s *SearchService) ThemeMenu(theme string) (Menu, error) {
	t := strings.ToLower(strings.TrimSpace(theme))
	if t == "" {
		return Menu{}, ErrAmbiguousInput
	}

	validated, ok := validateTerm(t, s.repo.TagVocabulary(), match.ThemeThreshold)
	if !ok {
		return Menu{Theme: t}, ErrNoMatch
	}

	themed := match.ByExactTags(s.repo.All(), []string{validated})
	if len(themed) == 0 {
		return Menu{Theme: validated}, ErrNoMatch
	}
	ranked := rankCopy(themed)

	menu := Menu{Theme: validated}
	for _, course := range menuCourses {
		sel := CourseSelection{Course: course.Course}
		for i := range ranked {
			if hasAnyTag(ranked[i], course.Tags) {
				sel.Recipe = &ranked[i]
				break
			}
		}
		menu.Courses = append(menu.Courses, sel)
	}
	return menu, nil
}

func hasAnyTag(r model.Recipe, tags []string) bool {
	for _, t := range tags {
		if r.HasTag(t) {
			return true
		}
	}
	return false
}
