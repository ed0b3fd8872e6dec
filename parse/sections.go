package parse

import (
	"regexp"

	"github.com/structeng/sgres/result"
)

// sectionFunc parses one block's data lines into its table on the set.
// Each block type owns its column schema; adding a block type means
// adding a registry entry, not touching the other parsers.
type sectionFunc func(b *block, set *result.Set) error

// registry maps the block header as printed in the file to its parser.
// Headers absent from the registry are retained as raw blocks.
var registry = map[string]sectionFunc{
	"NODES":                                  parseNodes,
	"MEMBERS":                                parseMembers,
	"SECTIONS":                               parseSections,
	"MATERIALS":                              parseMaterials,
	"RESTRAINTS":                             parseRestraints,
	"NODELOADS":                              parseNodeLoads,
	"TITLES":                                 parseTitles,
	"COMBINATIONS":                           parseCombinations,
	"DISPLACEMENTS":                          parseDisplacements,
	"REACTIONS":                              parseReactions,
	"MEMBER FORCES AND MOMENTS":              parseForcesMoments,
	"MEMBER INTERMEDIATE FORCES AND MOMENTS": parseIntForcesMoments,
	"MEMBER INTERMEDIATE DISPLACEMENTS":      parseIntDisplacements,
	"MEMBER STRESSES":                        parseMemberStresses,
	"STEEL MEMBERS":                          parseSteelMembers,
}

func parseNodes(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		n := result.Node{
			ID: rec.Int(0, "node_id"),
			X:  rec.Float(1, "x"),
			Y:  rec.Float(2, "y"),
			Z:  rec.Float(3, "z"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Nodes = append(set.Nodes, n)
	}
	return nil
}

// MEMBERS rows carry twenty columns; only the connectivity and the
// section/material references are meaningful here, the rest are
// tolerated and skipped.
func parseMembers(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		m := result.Member{
			ID:         rec.Int(0, "member_id"),
			StartNode:  rec.Int(5, "node_i"),
			EndNode:    rec.Int(6, "node_j"),
			SectionID:  rec.Int(7, "section_id"),
			MaterialID: rec.Int(8, "material_id"),
			ReleaseI:   rec.Text(9, "releases_i"),
			ReleaseJ:   rec.Text(10, "releases_j"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Members = append(set.Members, m)
	}
	return nil
}

// SECTIONS records span four lines. The main line is recognized by its
// non-numeric name in the second field; stray continuation lines without
// a main line are skipped.
func parseSections(b *block, set *result.Set) error {
	for i := 0; i < len(b.lines); {
		rec, err := b.record(b.lines[i])
		if err != nil {
			return err
		}
		if !isSectionMain(rec) {
			i++
			continue
		}
		sec := result.Section{
			ID:        rec.Int(0, "section_id"),
			Name:      rec.Text(1, "name"),
			Source:    rec.Text(2, "source"),
			ShortName: rec.Text(3, "short_name"),
			Area:      rec.Float(4, "area"),
			Ixx:       rec.Float(5, "Ixx"),
			Iyy:       rec.Float(6, "Iyy"),
			J:         rec.Float(7, "J"),
		}
		if err := rec.Err(); err != nil {
			return err
		}

		conts, next, err := b.continuations(i, 3)
		if err != nil {
			return err
		}
		if len(conts) > 0 {
			c := conts[0]
			sec.Zxx = c.FloatOpt(0, "Zxx")
			sec.Zyy = c.FloatOpt(1, "Zyy")
			sec.Rx = c.FloatOpt(2, "rx")
			sec.Ry = c.FloatOpt(3, "ry")
			if err := c.Err(); err != nil {
				return err
			}
		}
		if len(conts) > 1 {
			c := conts[1]
			sec.Depth = c.FloatOpt(0, "depth")
			sec.Width = c.FloatOpt(1, "width")
			if err := c.Err(); err != nil {
				return err
			}
		}
		set.Sections = append(set.Sections, sec)
		i = next
	}
	return nil
}

func isSectionMain(rec *record) bool {
	name := rec.Text(1, "name")
	if name == "" {
		return false
	}
	return !numericToken(name)
}

func parseMaterials(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		m := result.Material{
			ID:           rec.Int(0, "material_id"),
			Name:         rec.Text(1, "name"),
			Type:         rec.Text(2, "type"),
			E:            rec.Float(3, "E"),
			Poisson:      rec.Float(4, "poisson"),
			Density:      rec.Float(5, "density"),
			ThermalCoeff: rec.FloatOpt(6, "thermal_coeff"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Materials = append(set.Materials, m)
	}
	return nil
}

// restraintCode matches the six character V/R/F code on a RESTRAINTS
// main line. Records span five lines; the four continuation lines carry
// spring data this model does not keep.
var restraintCode = regexp.MustCompile(`^[VRF]{6}$`)

func parseRestraints(b *block, set *result.Set) error {
	for i := 0; i < len(b.lines); {
		rec, err := b.record(b.lines[i])
		if err != nil {
			return err
		}
		code := rec.Text(1, "restraint_code")
		if !restraintCode.MatchString(code) {
			i++
			continue
		}
		r := result.Restraint{
			NodeID: rec.Int(0, "node_id"),
			Code:   code,
		}
		if err := rec.Err(); err != nil {
			return err
		}
		for d := 0; d < 6; d++ {
			r.Fixed[d] = code[d] != 'R'
		}
		_, next, err := b.continuations(i, 4)
		if err != nil {
			return err
		}
		set.Restraints = append(set.Restraints, r)
		i = next
	}
	return nil
}

// continuations collects up to max continuation records following the
// main record at index i, stopping early at the next main-looking line.
// It returns the continuation records and the index of the next record.
func (b *block) continuations(i, max int) ([]*record, int, error) {
	var conts []*record
	next := i + 1
	for len(conts) < max && next < len(b.lines) {
		rec, err := b.record(b.lines[next])
		if err != nil {
			return nil, 0, err
		}
		// A new main record starts with an id and a non-numeric or
		// coded second field.
		if rec.Len() > 1 && !numericToken(rec.Text(1, "")) && numericToken(rec.Text(0, "")) {
			break
		}
		conts = append(conts, rec)
		next++
	}
	return conts, next, nil
}

func parseNodeLoads(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		l := result.NodeLoad{
			LoadCase: rec.Int(0, "load_case_id"),
			NodeID:   rec.Int(1, "node_id"),
			FX:       rec.Float(2, "fx"),
			FY:       rec.Float(3, "fy"),
			FZ:       rec.Float(4, "fz"),
			MX:       rec.FloatOpt(5, "mx"),
			MY:       rec.FloatOpt(6, "my"),
			MZ:       rec.FloatOpt(7, "mz"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.NodeLoads = append(set.NodeLoads, l)
	}
	return nil
}

func parseTitles(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		t := result.Title{
			LoadCase: rec.Int(0, "load_case_id"),
			Title:    rec.Text(1, "title"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Titles = append(set.Titles, t)
	}
	return nil
}

func parseCombinations(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		c := result.Combination{
			Combo:    rec.Int(0, "combination_id"),
			LoadCase: rec.Int(1, "load_case_id"),
			Factor:   rec.Float(2, "factor"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Combinations = append(set.Combinations, c)
	}
	return nil
}

func parseDisplacements(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		d := result.Displacement{
			LoadCase: rec.Int(0, "load_case_id"),
			NodeID:   rec.Int(1, "node_id"),
			DX:       rec.Float(2, "dx"),
			DY:       rec.Float(3, "dy"),
			DZ:       rec.Float(4, "dz"),
			RX:       rec.Float(5, "rx"),
			RY:       rec.Float(6, "ry"),
			RZ:       rec.Float(7, "rz"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Displacements = append(set.Displacements, d)
	}
	return nil
}

func parseReactions(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		r := result.Reaction{
			LoadCase: rec.Int(0, "load_case_id"),
			NodeID:   rec.Int(1, "node_id"),
			FX:       rec.Float(2, "fx"),
			FY:       rec.Float(3, "fy"),
			FZ:       rec.Float(4, "fz"),
			MX:       rec.Float(5, "mx"),
			MY:       rec.Float(6, "my"),
			MZ:       rec.Float(7, "mz"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.Reactions = append(set.Reactions, r)
	}
	return nil
}

func parseForcesMoments(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		f := result.ForceMoment{
			LoadCase: rec.Int(0, "load_case_id"),
			MemberID: rec.Int(1, "member_id"),
			NodeID:   rec.Int(2, "node_id"),
			FX:       rec.Float(3, "fx"),
			FY:       rec.Float(4, "fy"),
			FZ:       rec.Float(5, "fz"),
			MX:       rec.Float(6, "mx"),
			MY:       rec.Float(7, "my"),
			MZ:       rec.Float(8, "mz"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.ForcesMoments = append(set.ForcesMoments, f)
	}
	return nil
}

func parseIntForcesMoments(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		f := result.IntForceMoment{
			LoadCase: rec.Int(0, "load_case_id"),
			MemberID: rec.Int(1, "member_id"),
			Station:  rec.Int(2, "station"),
			Position: rec.Float(3, "position"),
			FX:       rec.Float(4, "fx"),
			FY:       rec.Float(5, "fy"),
			FZ:       rec.Float(6, "fz"),
			MX:       rec.Float(7, "mx"),
			MY:       rec.Float(8, "my"),
			MZ:       rec.Float(9, "mz"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.IntForcesMoments = append(set.IntForcesMoments, f)
	}
	return nil
}

func parseIntDisplacements(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		d := result.IntDisplacement{
			LoadCase: rec.Int(0, "load_case_id"),
			MemberID: rec.Int(1, "member_id"),
			Station:  rec.Int(2, "station"),
			Position: rec.Float(3, "position"),
			DX:       rec.Float(4, "dx"),
			DY:       rec.Float(5, "dy"),
			DZ:       rec.Float(6, "dz"),
			RX:       rec.Float(7, "rx"),
			RY:       rec.Float(8, "ry"),
			RZ:       rec.Float(9, "rz"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.IntDisplacements = append(set.IntDisplacements, d)
	}
	return nil
}

func parseMemberStresses(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		st := result.MemberStress{
			LoadCase:    rec.Int(0, "load_case_id"),
			MemberID:    rec.Int(1, "member_id"),
			Position:    rec.Float(2, "position"),
			Axial:       rec.Float(3, "axial"),
			BendingY:    rec.Float(4, "bending_y"),
			BendingZ:    rec.Float(5, "bending_z"),
			CombinedMax: rec.FloatOpt(6, "combined_max"),
			CombinedMin: rec.FloatOpt(7, "combined_min"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.MemberStresses = append(set.MemberStresses, st)
	}
	return nil
}

func parseSteelMembers(b *block, set *result.Set) error {
	for _, ln := range b.lines {
		rec, err := b.record(ln)
		if err != nil {
			return err
		}
		sm := result.SteelMember{
			MemberID:   rec.Int(0, "member_id"),
			DesignCode: rec.Text(1, "design_code"),
			Group:      rec.Text(2, "group"),
			Ky:         rec.FloatOpt(3, "ky"),
			Kz:         rec.FloatOpt(4, "kz"),
			Phi:        rec.FloatOpt(5, "phi"),
		}
		if err := rec.Err(); err != nil {
			return err
		}
		set.SteelMembers = append(set.SteelMembers, sm)
	}
	return nil
}

// numericToken reports whether a field holds a plain decimal number.
func numericToken(s string) bool {
	if s == "" {
		return false
	}
	_, err := parseFloat(s)
	return err == nil
}
