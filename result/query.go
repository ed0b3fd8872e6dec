package result

import (
	"fmt"
	"sort"
	"strings"
)

// FilterForcesMoments returns the member end force rows matching every
// supplied filter. A nil (or empty) slice leaves that filter open, so
// FilterForcesMoments(nil, nil) returns the whole table. Rows keep their
// source order; a query that matches nothing returns an empty slice.
func (s *Set) FilterForcesMoments(loadCases, members []int) []ForceMoment {
	caseLookup := idLookup(loadCases)
	memberLookup := idLookup(members)

	out := make([]ForceMoment, 0, len(s.ForcesMoments))
	for _, f := range s.ForcesMoments {
		if caseLookup != nil && !caseLookup[f.LoadCase] {
			continue
		}
		if memberLookup != nil && !memberLookup[f.MemberID] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func idLookup(ids []int) map[int]bool {
	if len(ids) == 0 {
		return nil
	}
	lookup := make(map[int]bool, len(ids))
	for _, id := range ids {
		lookup[id] = true
	}
	return lookup
}

// MemberSection is one row of the member/section join. Section is nil when
// the member's section id does not resolve; the member is kept regardless.
type MemberSection struct {
	Member  Member
	Section *Section
}

// JoinMemberSections joins each selected member with its section. With a
// nil id slice every member is selected, in table order. Requested ids
// absent from the member table are excluded from the join and returned in
// ascending order as the second value; asking for a missing id is not an
// error.
func (s *Set) JoinMemberSections(members []int) ([]MemberSection, []int) {
	var out []MemberSection
	var missing []int

	if len(members) == 0 {
		out = make([]MemberSection, 0, len(s.Members))
		for _, m := range s.Members {
			out = append(out, MemberSection{Member: m, Section: m.section})
		}
		return out, nil
	}

	out = make([]MemberSection, 0, len(members))
	for _, id := range members {
		m, ok := s.memberLookup[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, MemberSection{Member: *m, Section: m.section})
	}
	sort.Ints(missing)
	return out, missing
}

// SummarizeSections renders each distinct section definition with the
// number of members that use it, ordered by section id so the output is
// stable across calls.
func (s *Set) SummarizeSections() string {
	counts := make(map[int]int, len(s.Sections))
	for _, m := range s.Members {
		counts[m.SectionID]++
	}

	ids := make([]int, 0, len(s.Sections))
	byID := make(map[int]*Section, len(s.Sections))
	for i := range s.Sections {
		sec := &s.Sections[i]
		if _, ok := byID[sec.ID]; ok {
			continue
		}
		byID[sec.ID] = sec
		ids = append(ids, sec.ID)
	}
	sort.Ints(ids)

	b := &strings.Builder{}
	for _, id := range ids {
		sec := byID[id]
		name := sec.Name
		if name == "" {
			name = sec.ShortName
		}
		n := counts[id]
		noun := "members"
		if n == 1 {
			noun = "member"
		}
		fmt.Fprintf(b, "section %d %q: %d %s\n", id, name, n, noun)
	}
	return b.String()
}
