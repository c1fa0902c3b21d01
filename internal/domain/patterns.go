package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// PatternValidator produces schema-free, lower-confidence findings from raw
// GraphQL text and model bodies. When schema snapshots are loaded, a schema
// finding at the same position supersedes the pattern one.
type PatternValidator struct {
	extraArg      *regexp.Regexp
	emptyArgs     *regexp.Regexp
	bareSelection *regexp.Regexp
	quotedNumeric *regexp.Regexp
	stringVar     *regexp.Regexp
	suspicious    *regexp.Regexp
	directive     *regexp.Regexp
	inlineOn      *regexp.Regexp
	spread        *regexp.Regexp

	requiresArgs map[string]struct{}
	goodDirs     map[string]struct{}
	skipNames    map[string]struct{}
}

// NewPatternValidator compiles the lint patterns once.
func NewPatternValidator() *PatternValidator {
	return &PatternValidator{
		extraArg:      regexp.MustCompile(`(?i)(\w+)\s*\([^)]*\b(extraArg|unknownArg|invalidArg|testArg)\b[^)]*\)`),
		emptyArgs:     regexp.MustCompile(`(\w+)\s*\(\s*\)`),
		bareSelection: regexp.MustCompile(`(\w+)\s*\{`),
		quotedNumeric: regexp.MustCompile(`\b(first|last|limit|offset|count)\s*:\s*["']([^"'\n]+)["']`),
		stringVar:     regexp.MustCompile(`\$(\w+)\s*:\s*String!`),
		suspicious:    regexp.MustCompile(`(?i)\b(?:nonExistent|invalid|unknown|dummy)\w*\b`),
		directive:     regexp.MustCompile(`@(\w+)`),
		inlineOn:      regexp.MustCompile(`\.\.\.\s*on\s+(\w+)`),
		spread:        regexp.MustCompile(`\.\.\.\s*(\w+)`),
		requiresArgs: set("customer", "product", "order", "user", "shop",
			"customerupdated", "ordercreated", "customerupdates"),
		goodDirs: set("include", "skip", "deprecated", "client", "connection",
			"defer", "live"),
		skipNames: set("id", "email", "firstname", "lastname", "name", "title",
			"description", "on", "fragment", "query", "mutation",
			"subscription", "customerid", "total"),
	}
}

func set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}

	return s
}

// CheckOperation lints one extracted block. Unknown blocks surface their
// parse error as a finding instead of being linted.
func (v *PatternValidator) CheckOperation(block m.ExtractedBlock) []m.Finding {
	if block.Kind == m.BlockUnknown {
		return []m.Finding{{
			File:     block.File,
			Line:     block.StartLine,
			Column:   1,
			Severity: m.SeverityError,
			Category: m.CategoryParse,
			Message:  fmt.Sprintf("[%s] %s", m.CategoryParse, block.ParseError),
		}}
	}

	raw := block.Raw

	var findings []m.Finding

	add := func(offset int, severity m.Severity, category m.Category, format string, args ...any) {
		line, column := locate(raw, offset, block.StartLine)

		findings = append(findings, m.Finding{
			File:     block.File,
			Line:     line,
			Column:   column,
			Severity: severity,
			Category: category,
			Message:  fmt.Sprintf("[%s] ", category) + fmt.Sprintf(format, args...),
		})
	}

	for _, match := range v.extraArg.FindAllStringSubmatchIndex(raw, -1) {
		field := raw[match[2]:match[3]]
		arg := raw[match[4]:match[5]]
		add(match[0], m.SeverityError, m.CategoryExtraArgument,
			"field '%s' does not accept extra argument '%s'", field, arg)
	}

	for _, re := range []*regexp.Regexp{v.emptyArgs, v.bareSelection} {
		for _, match := range re.FindAllStringSubmatchIndex(raw, -1) {
			field := raw[match[2]:match[3]]
			if _, ok := v.requiresArgs[strings.ToLower(field)]; !ok {
				continue
			}

			add(match[0], m.SeverityError, m.CategoryMissingArgument,
				"field '%s' may require arguments", strings.ToLower(field))
		}
	}

	for _, match := range v.quotedNumeric.FindAllStringSubmatchIndex(raw, -1) {
		arg := raw[match[2]:match[3]]
		value := raw[match[4]:match[5]]
		add(match[0], m.SeverityError, m.CategoryInvalidArgument,
			"%s argument should be a number, not a string: '%s'", arg, value)
	}

	findings = append(findings, v.checkStringVars(block, raw)...)

	for _, match := range v.suspicious.FindAllStringIndex(raw, -1) {
		name := raw[match[0]:match[1]]
		if _, ok := v.skipNames[strings.ToLower(name)]; ok {
			continue
		}

		// Directive and fragment positions have dedicated checks.
		if match[0] > 0 && raw[match[0]-1] == '@' {
			continue
		}

		add(match[0], m.SeverityError, m.CategoryNonExistentField,
			"field '%s' likely does not exist in schema", name)
	}

	for _, match := range v.directive.FindAllStringSubmatchIndex(raw, -1) {
		name := raw[match[2]:match[3]]
		if _, ok := v.goodDirs[strings.ToLower(name)]; ok {
			continue
		}

		add(match[0], m.SeverityError, m.CategoryInvalidDirective,
			"invalid directive '@%s'", name)
	}

	for _, match := range v.inlineOn.FindAllStringSubmatchIndex(raw, -1) {
		name := raw[match[2]:match[3]]
		if !v.suspicious.MatchString(name) {
			continue
		}

		add(match[0], m.SeverityWarning, m.CategoryInvalidFragment,
			"inline fragment on type '%s' may not be compatible", name)
	}

	for _, match := range v.spread.FindAllStringSubmatchIndex(raw, -1) {
		name := raw[match[2]:match[3]]
		if name == "on" || !v.suspicious.MatchString(name) {
			continue
		}

		add(match[0], m.SeverityWarning, m.CategoryInvalidFragment,
			"fragment spread '%s' likely does not exist", name)
	}

	return findings
}

// checkStringVars flags String!-typed variables fed into numeric argument
// positions.
func (v *PatternValidator) checkStringVars(block m.ExtractedBlock, raw string) []m.Finding {
	var findings []m.Finding

	for _, match := range v.stringVar.FindAllStringSubmatch(raw, -1) {
		name := match[1]
		usage := regexp.MustCompile(`\b(first|last|limit|offset|count)\s*:\s*\$` + regexp.QuoteMeta(name) + `\b`)

		for _, use := range usage.FindAllStringSubmatchIndex(raw, -1) {
			arg := raw[use[2]:use[3]]
			line, column := locate(raw, use[0], block.StartLine)

			findings = append(findings, m.Finding{
				File:     block.File,
				Line:     line,
				Column:   column,
				Severity: m.SeverityError,
				Category: m.CategoryTypeMismatch,
				Message: fmt.Sprintf("[%s] variable '$%s' declared as String! but used for numeric '%s' argument",
					m.CategoryTypeMismatch, name, arg),
			})
		}
	}

	return findings
}

// CheckModel lints one model definition body.
func (v *PatternValidator) CheckModel(def m.ModelDefinition) []m.Finding {
	var findings []m.Finding

	lines := strings.Split(def.Raw, "\n")

	fieldDecl := regexp.MustCompile(`^\s+(\w+)\s*:\s*([^=\n]+?)\s*$`)
	constraint := regexp.MustCompile(`Field\([^)]*\b(ge|le|gt|lt|max_length|min_length|regex|pattern)\s*=`)
	complexType := regexp.MustCompile(`(\w+)\s*:\s*Optional\[\s*(List|Dict|Union|Set|Tuple)\[`)

	for i, line := range lines {
		lineNum := def.StartLine + i

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "class ") || strings.HasPrefix(trimmed, "def ") {
			continue
		}

		if match := fieldDecl.FindStringSubmatch(line); match != nil {
			fieldName := match[1]
			fieldType := strings.TrimSpace(match[2])

			if !strings.HasPrefix(fieldName, "_") && !strings.Contains(fieldType, "Optional[") && !strings.HasSuffix(fieldType, ":") {
				findings = append(findings, m.Finding{
					File:     def.File,
					Line:     lineNum,
					Column:   1,
					Severity: m.SeverityWarning,
					Category: m.CategoryModelRequired,
					Message: fmt.Sprintf("[%s] Field '%s' in model '%s' has no default value - may be required",
						m.CategoryModelRequired, fieldName, def.Name),
				})
			}
		}

		if match := constraint.FindStringSubmatch(line); match != nil {
			findings = append(findings, m.Finding{
				File:     def.File,
				Line:     lineNum,
				Column:   1,
				Severity: m.SeverityInfo,
				Category: m.CategoryModelConstraint,
				Message: fmt.Sprintf("[%s] %s constraint found in model '%s' - verify constraint values are appropriate",
					m.CategoryModelConstraint, match[1], def.Name),
			})
		}

		if match := complexType.FindStringSubmatch(line); match != nil {
			findings = append(findings, m.Finding{
				File:     def.File,
				Line:     lineNum,
				Column:   1,
				Severity: m.SeverityWarning,
				Category: m.CategoryModelComplexType,
				Message: fmt.Sprintf("[%s] Field '%s' uses Optional[%s[...]] in model '%s' - verify type compatibility",
					m.CategoryModelComplexType, match[1], match[2], def.Name),
			})
		}
	}

	findings = append(findings, v.checkInheritance(def)...)

	return findings
}

// checkInheritance warns on classes inheriting several model bases at once.
func (v *PatternValidator) checkInheritance(def m.ModelDefinition) []m.Finding {
	header := regexp.MustCompile(`class\s+(\w+)\s*\(([^)]+)\)\s*:`)

	match := header.FindStringSubmatch(def.Raw)
	if match == nil || !strings.Contains(match[2], ",") {
		return nil
	}

	modelBases := 0

	for _, base := range strings.Split(match[2], ",") {
		base = strings.TrimSpace(base)
		if strings.Contains(base, "BaseModel") || strings.Contains(base, "RootModel") {
			modelBases++
		}
	}

	if modelBases < 2 {
		return nil
	}

	return []m.Finding{{
		File:     def.File,
		Line:     def.StartLine,
		Column:   1,
		Severity: m.SeverityWarning,
		Category: m.CategoryModelInheritance,
		Message: fmt.Sprintf("[%s] Model '%s' inherits from multiple Pydantic models which may cause conflicts",
			m.CategoryModelInheritance, match[1]),
	}}
}

// SupersedeByLocation drops pattern findings that collide with a schema
// finding at the same file position; the schema message wins.
func SupersedeByLocation(pattern, schemaFindings []m.Finding) []m.Finding {
	type loc struct {
		file   m.Path
		line   int
		column int
	}

	taken := make(map[loc]struct{}, len(schemaFindings))
	for _, f := range schemaFindings {
		taken[loc{file: f.File, line: f.Line, column: f.Column}] = struct{}{}
	}

	out := make([]m.Finding, 0, len(pattern))

	for _, f := range pattern {
		if _, ok := taken[loc{file: f.File, line: f.Line, column: f.Column}]; ok {
			continue
		}

		out = append(out, f)
	}

	return out
}

// locate maps a byte offset in a block back to file line and column.
func locate(raw string, offset int, baseLine int) (line, column int) {
	if offset > len(raw) {
		offset = len(raw)
	}

	before := raw[:offset]
	line = baseLine + strings.Count(before, "\n")

	if idx := strings.LastIndexByte(before, '\n'); idx >= 0 {
		return line, offset - idx
	}

	return line, offset + 1
}
