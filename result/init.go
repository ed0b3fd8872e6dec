package result

// Init populates the id lookups and checks referential integrity across
// tables. Dangling references and duplicate ids are reported as warnings,
// never as a failure: a report may legitimately omit peripheral tables,
// and the affected rows are kept with the reference intact.
//
// Init also resolves ForceMoment.End by matching each row's node id
// against the member's end nodes. It is called by the load package and is
// safe to call again; the Set is not mutated after it returns.
func (s *Set) Init() *Errors {
	var warns *Errors

	s.setup = false
	s.nodeLookup = make(map[int]*Node, len(s.Nodes))
	s.memberLookup = make(map[int]*Member, len(s.Members))
	s.sectLookup = make(map[int]*Section, len(s.Sections))
	s.matLookup = make(map[int]*Material, len(s.Materials))
	s.titleLookup = make(map[int]*Title, len(s.Titles))

	for i := range s.Nodes {
		n := &s.Nodes[i]
		if _, ok := s.nodeLookup[n.ID]; ok {
			warns = warns.AppendMsg("result: node %d already defined", n.ID)
			continue
		}
		s.nodeLookup[n.ID] = n
	}
	for i := range s.Sections {
		sec := &s.Sections[i]
		if _, ok := s.sectLookup[sec.ID]; ok {
			warns = warns.AppendMsg("result: section %d already defined", sec.ID)
			continue
		}
		s.sectLookup[sec.ID] = sec
	}
	for i := range s.Materials {
		mat := &s.Materials[i]
		if _, ok := s.matLookup[mat.ID]; ok {
			warns = warns.AppendMsg("result: material %d already defined", mat.ID)
			continue
		}
		s.matLookup[mat.ID] = mat
	}
	for i := range s.Titles {
		t := &s.Titles[i]
		if _, ok := s.titleLookup[t.LoadCase]; ok {
			warns = warns.AppendMsg("result: load case %d titled twice", t.LoadCase)
			continue
		}
		s.titleLookup[t.LoadCase] = t
	}

	for i := range s.Members {
		m := &s.Members[i]
		m.start, m.end, m.section, m.material = nil, nil, nil, nil

		if _, ok := s.memberLookup[m.ID]; ok {
			warns = warns.AppendMsg("result: member %d already defined", m.ID)
		} else {
			s.memberLookup[m.ID] = m
		}

		if n, ok := s.nodeLookup[m.StartNode]; ok {
			m.start = n
		} else {
			warns = warns.AppendMsg("result: member %d references missing start node %d", m.ID, m.StartNode)
		}
		if n, ok := s.nodeLookup[m.EndNode]; ok {
			m.end = n
		} else {
			warns = warns.AppendMsg("result: member %d references missing end node %d", m.ID, m.EndNode)
		}
		if sec, ok := s.sectLookup[m.SectionID]; ok {
			m.section = sec
		} else if len(s.Sections) > 0 {
			warns = warns.AppendMsg("result: member %d references missing section %d", m.ID, m.SectionID)
		}
		if mat, ok := s.matLookup[m.MaterialID]; ok {
			m.material = mat
		} else if len(s.Materials) > 0 {
			warns = warns.AppendMsg("result: member %d references missing material %d", m.ID, m.MaterialID)
		}
	}

	warns = s.checkNodeRefs(warns)
	warns = s.checkCaseRefs(warns)
	warns = s.checkMemberRefs(warns)

	s.setup = true
	return warns
}

func (s *Set) checkNodeRefs(warns *Errors) *Errors {
	if len(s.Nodes) == 0 {
		return warns
	}
	for _, r := range s.Restraints {
		if _, ok := s.nodeLookup[r.NodeID]; !ok {
			warns = warns.AppendMsg("result: restraint references missing node %d", r.NodeID)
		}
	}
	for _, l := range s.NodeLoads {
		if _, ok := s.nodeLookup[l.NodeID]; !ok {
			warns = warns.AppendMsg("result: node load case %d references missing node %d", l.LoadCase, l.NodeID)
		}
	}
	for _, d := range s.Displacements {
		if _, ok := s.nodeLookup[d.NodeID]; !ok {
			warns = warns.AppendMsg("result: displacement case %d references missing node %d", d.LoadCase, d.NodeID)
		}
	}
	for _, r := range s.Reactions {
		if _, ok := s.nodeLookup[r.NodeID]; !ok {
			warns = warns.AppendMsg("result: reaction case %d references missing node %d", r.LoadCase, r.NodeID)
		}
	}
	return warns
}

func (s *Set) checkCaseRefs(warns *Errors) *Errors {
	if len(s.Titles) == 0 {
		return warns
	}
	seen := map[int]bool{}
	miss := func(id int) bool {
		if _, ok := s.titleLookup[id]; ok {
			return false
		}
		if seen[id] {
			return false
		}
		seen[id] = true
		return true
	}
	for _, c := range s.Combinations {
		if miss(c.LoadCase) {
			warns = warns.AppendMsg("result: combination %d references untitled load case %d", c.Combo, c.LoadCase)
		}
	}
	for _, d := range s.Displacements {
		if miss(d.LoadCase) {
			warns = warns.AppendMsg("result: displacements reference untitled load case %d", d.LoadCase)
		}
	}
	for _, r := range s.Reactions {
		if miss(r.LoadCase) {
			warns = warns.AppendMsg("result: reactions reference untitled load case %d", r.LoadCase)
		}
	}
	for _, f := range s.ForcesMoments {
		if miss(f.LoadCase) {
			warns = warns.AppendMsg("result: member forces reference untitled load case %d", f.LoadCase)
		}
	}
	for _, f := range s.IntForcesMoments {
		if miss(f.LoadCase) {
			warns = warns.AppendMsg("result: intermediate forces reference untitled load case %d", f.LoadCase)
		}
	}
	return warns
}

func (s *Set) checkMemberRefs(warns *Errors) *Errors {
	if len(s.Members) == 0 {
		return warns
	}
	for i := range s.ForcesMoments {
		f := &s.ForcesMoments[i]
		m, ok := s.memberLookup[f.MemberID]
		if !ok {
			warns = warns.AppendMsg("result: force row case %d references missing member %d", f.LoadCase, f.MemberID)
			continue
		}
		switch f.NodeID {
		case m.StartNode:
			f.End = EndStart
		case m.EndNode:
			f.End = EndEnd
		default:
			f.End = EndUnknown
			warns = warns.AppendMsg("result: force row case %d member %d reported at node %d, not an end of the member", f.LoadCase, f.MemberID, f.NodeID)
		}
	}
	for _, f := range s.IntForcesMoments {
		if _, ok := s.memberLookup[f.MemberID]; !ok {
			warns = warns.AppendMsg("result: intermediate force row case %d references missing member %d", f.LoadCase, f.MemberID)
		}
	}
	for _, d := range s.IntDisplacements {
		if _, ok := s.memberLookup[d.MemberID]; !ok {
			warns = warns.AppendMsg("result: intermediate displacement row case %d references missing member %d", d.LoadCase, d.MemberID)
		}
	}
	for _, st := range s.MemberStresses {
		if _, ok := s.memberLookup[st.MemberID]; !ok {
			warns = warns.AppendMsg("result: stress row case %d references missing member %d", st.LoadCase, st.MemberID)
		}
	}
	for _, sm := range s.SteelMembers {
		if _, ok := s.memberLookup[sm.MemberID]; !ok {
			warns = warns.AppendMsg("result: steel member data references missing member %d", sm.MemberID)
		}
	}
	return warns
}
