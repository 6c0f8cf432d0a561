// SPDX-License-Identifier: MPL-2.0

package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/zowe/zowe-cli-sub019/internal/syntax"
)

const (
	// HandlerName is the handler key of every zos-jobs command.
	HandlerName = "zos-jobs"

	// RestJobs is the z/OSMF jobs REST resource.
	RestJobs = "/zosmf/restjobs/jobs"
	// RestDataSets is the z/OSMF data set REST resource.
	RestDataSets = "/zosmf/restfiles/ds"

	// JobNamePlaceholder stands for a job name the plan learns from an
	// earlier response.
	JobNamePlaceholder = "{jobname}"
	// JobIDPlaceholder stands for a job ID returned by the submit request.
	JobIDPlaceholder = "{jobid}"
	// SpoolIDPlaceholder stands for each spool file ID of a job.
	SpoolIDPlaceholder = "{spoolid}"

	defaultOutputDir = "./output"
	defaultExtension = ".txt"
	defaultVersion   = "2.0"
	symbolHeader     = "X-IBM-JCL-Symbol-"
)

var (
	// ErrUnsupportedCommand is returned for a command path with no plan.
	ErrUnsupportedCommand = errors.New("unsupported zos-jobs command")

	// ErrInvalidSymbol is returned for a JCL symbol without "=".
	ErrInvalidSymbol = errors.New("invalid JCL symbol")

	jsonHeaders = map[string]string{"Content-Type": "application/json"}
	textHeaders = map[string]string{
		"Content-Type":       "text/plain; charset=UTF-8",
		"X-IBM-Intrdr-Mode":  "TEXT",
		"X-IBM-Intrdr-Lrecl": "80",
		"X-IBM-Intrdr-Recfm": "F",
	}
)

type (
	// Request is one REST call of a plan.
	Request struct {
		Method  string            `json:"method" yaml:"method"`
		Path    string            `json:"path" yaml:"path"`
		Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
		Body    any               `json:"body,omitempty" yaml:"body,omitempty"`
		// Note says when or how often the request is issued.
		Note string `json:"note,omitempty" yaml:"note,omitempty"`
	}

	// Output describes where downloaded spool files are written.
	Output struct {
		Directory          string `json:"directory" yaml:"directory"`
		Extension          string `json:"extension" yaml:"extension"`
		OmitJobIDDirectory bool   `json:"omitJobidDirectory" yaml:"omitJobidDirectory"`
	}

	// Plan is the ordered list of requests a command would issue.
	Plan struct {
		Command     string    `json:"command" yaml:"command"`
		Requests    []Request `json:"requests" yaml:"requests"`
		Output      *Output   `json:"output,omitempty" yaml:"output,omitempty"`
		Concurrency int       `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	}

	// UnsupportedCommandError names a command path BuildPlan does not know.
	UnsupportedCommandError struct {
		Command string
	}

	// InvalidSymbolError reports a --jcl-symbols entry that is not NAME=value.
	InvalidSymbolError struct {
		Symbol string
	}

	planner func(*Plan, *syntax.Normalized) error
)

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedCommand, e.Command)
}

func (e *UnsupportedCommandError) Unwrap() error { return ErrUnsupportedCommand }

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%s %q (expected NAME=value)", ErrInvalidSymbol, e.Symbol)
}

func (e *InvalidSymbolError) Unwrap() error { return ErrInvalidSymbol }

var planners = map[string]planner{
	"submit data-set":          planSubmitDataSet,
	"submit local-file":        planSubmitText("localFile", "<contents of %s>"),
	"submit uss-file":          planSubmitUSSFile,
	"submit stdin":             planSubmitText("", "<standard input>"),
	"list jobs":                planListJobs,
	"view job-status-by-jobid": planViewStatus,
	"download output":          planDownloadOutput,
	"cancel job":               planCancelJob,
	"delete job":               planDeleteJob,
	"delete old-jobs":          planDeleteOldJobs,
}

// Commands returns the command paths, below the zos-jobs group, that have a
// plan.
func Commands() []string {
	return slices.Sorted(maps.Keys(planners))
}

// BuildPlan returns the plan for command, the full command path such as
// "zos-jobs submit data-set", using validated arguments.
func BuildPlan(command string, args *syntax.Normalized) (*Plan, error) {
	sub := strings.TrimSpace(strings.TrimPrefix(command, GroupName))
	p, ok := planners[sub]
	if !ok {
		return nil, &UnsupportedCommandError{Command: command}
	}
	plan := &Plan{Command: command}
	if err := p(plan, args); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *Plan) add(r Request) {
	p.Requests = append(p.Requests, r)
}

func planSubmitDataSet(p *Plan, args *syntax.Normalized) error {
	dataset := strings.ToUpper(stringArg(args, "dataset"))
	symbols, err := symbolHeaders(args)
	if err != nil {
		return err
	}
	if volume := stringArg(args, "volume"); volume != "" {
		p.add(Request{
			Method: "GET",
			Path:   RestDataSets + "/-(" + url.PathEscape(strings.ToUpper(volume)) + ")/" + url.PathEscape(dataset),
			Note:   "read the JCL from the uncataloged data set",
		})
		p.add(Request{
			Method:  "PUT",
			Path:    RestJobs,
			Headers: withHeaders(textHeaders, symbols),
			Body:    "<JCL read from " + dataset + ">",
		})
	} else {
		p.add(Request{
			Method:  "PUT",
			Path:    RestJobs,
			Headers: withHeaders(jsonHeaders, symbols),
			Body:    map[string]string{"file": "//'" + dataset + "'"},
		})
	}
	planWaits(p, args)
	return nil
}

func planSubmitText(positional, bodyFormat string) planner {
	return func(p *Plan, args *syntax.Normalized) error {
		symbols, err := symbolHeaders(args)
		if err != nil {
			return err
		}
		body := bodyFormat
		if positional != "" {
			body = fmt.Sprintf(bodyFormat, stringArg(args, positional))
		}
		p.add(Request{Method: "PUT", Path: RestJobs, Headers: withHeaders(textHeaders, symbols), Body: body})
		planWaits(p, args)
		return nil
	}
}

func planSubmitUSSFile(p *Plan, args *syntax.Normalized) error {
	symbols, err := symbolHeaders(args)
	if err != nil {
		return err
	}
	p.add(Request{
		Method:  "PUT",
		Path:    RestJobs,
		Headers: withHeaders(jsonHeaders, symbols),
		Body:    map[string]string{"file": stringArg(args, "file")},
	})
	planWaits(p, args)
	return nil
}

// planWaits adds the polling and spool requests that follow a submit.
func planWaits(p *Plan, args *syntax.Normalized) {
	job := RestJobs + "/" + JobNamePlaceholder + "/" + JobIDPlaceholder
	directory := stringArg(args, "directory")
	viewAll := boolArg(args, "view-all-spool-content")

	switch {
	case boolArg(args, "wait-for-active"):
		p.add(Request{Method: "GET", Path: job, Note: "repeat until the job status is ACTIVE"})
		return
	case boolArg(args, "wait-for-output") || viewAll || directory != "":
		p.add(Request{Method: "GET", Path: job, Note: "repeat until the job status is OUTPUT"})
	default:
		return
	}

	if viewAll || directory != "" {
		planSpool(p, job)
	}
	if directory != "" {
		p.Output = &Output{Directory: directory, Extension: extensionArg(args)}
	}
}

func planSpool(p *Plan, job string) {
	p.add(Request{Method: "GET", Path: job + "/files", Note: "list the spool files"})
	p.add(Request{
		Method: "GET",
		Path:   job + "/files/" + SpoolIDPlaceholder + "/records",
		Note:   "once per spool file",
	})
}

func planListJobs(p *Plan, args *syntax.Normalized) error {
	query := url.Values{}
	if owner := stringArg(args, "owner"); owner != "" {
		query.Set("owner", strings.ToUpper(owner))
	}
	if prefix := stringArg(args, "prefix"); prefix != "" && prefix != "*" {
		query.Set("prefix", strings.ToUpper(prefix))
	}
	if maxJobs, ok := numberArg(args, "max-jobs"); ok {
		query.Set("max-jobs", strconv.Itoa(maxJobs))
	}
	if boolArg(args, "exec-data") {
		query.Set("exec-data", "Y")
	}
	p.add(Request{Method: "GET", Path: withQuery(RestJobs, query)})
	return nil
}

// lookupJob adds the request resolving a job ID to its job name and returns
// the job resource path.
func lookupJob(p *Plan, args *syntax.Normalized) string {
	jobid := strings.ToUpper(stringArg(args, "jobid"))
	p.add(Request{
		Method: "GET",
		Path:   withQuery(RestJobs, url.Values{"jobid": {jobid}}),
		Note:   "resolve the job name of " + jobid,
	})
	return RestJobs + "/" + JobNamePlaceholder + "/" + url.PathEscape(jobid)
}

func planViewStatus(p *Plan, args *syntax.Normalized) error {
	job := lookupJob(p, args)
	p.add(Request{Method: "GET", Path: job})
	return nil
}

func planDownloadOutput(p *Plan, args *syntax.Normalized) error {
	job := lookupJob(p, args)
	planSpool(p, job)
	dir := stringArg(args, "directory")
	if dir == "" {
		dir = defaultOutputDir
	}
	p.Output = &Output{
		Directory:          dir,
		Extension:          extensionArg(args),
		OmitJobIDDirectory: boolArg(args, "omit-jobid-directory"),
	}
	return nil
}

func planCancelJob(p *Plan, args *syntax.Normalized) error {
	job := lookupJob(p, args)
	p.add(Request{
		Method:  "PUT",
		Path:    job,
		Headers: jsonHeaders,
		Body:    map[string]string{"request": "cancel", "version": versionArg(args)},
	})
	return nil
}

func planDeleteJob(p *Plan, args *syntax.Normalized) error {
	job := lookupJob(p, args)
	p.add(Request{
		Method:  "DELETE",
		Path:    job,
		Headers: map[string]string{"X-IBM-Job-Modify-Version": versionArg(args)},
	})
	return nil
}

func planDeleteOldJobs(p *Plan, args *syntax.Normalized) error {
	query := url.Values{}
	if prefix := stringArg(args, "prefix"); prefix != "" && prefix != "*" {
		query.Set("prefix", strings.ToUpper(prefix))
	}
	p.add(Request{Method: "GET", Path: withQuery(RestJobs, query), Note: "list the candidate jobs"})

	concurrency, ok := numberArg(args, "max-concurrent-requests")
	if !ok || concurrency < 1 {
		concurrency = 1
	}
	p.Concurrency = concurrency
	p.add(Request{
		Method:  "DELETE",
		Path:    RestJobs + "/" + JobNamePlaceholder + "/" + JobIDPlaceholder,
		Headers: map[string]string{"X-IBM-Job-Modify-Version": versionArg(args)},
		Note:    fmt.Sprintf("once per job in OUTPUT status, %d at a time", concurrency),
	})
	return nil
}

func symbolHeaders(args *syntax.Normalized) (map[string]string, error) {
	symbols := stringsArg(args, "jcl-symbols")
	if len(symbols) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		name, value, ok := strings.Cut(sym, "=")
		if !ok || name == "" {
			return nil, &InvalidSymbolError{Symbol: sym}
		}
		headers[symbolHeader+strings.ToUpper(name)] = value
	}
	return headers, nil
}

func withHeaders(base, extra map[string]string) map[string]string {
	out := maps.Clone(base)
	maps.Copy(out, extra)
	return out
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func extensionArg(args *syntax.Normalized) string {
	ext := stringArg(args, "extension")
	if ext == "" {
		return defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func versionArg(args *syntax.Normalized) string {
	if v := stringArg(args, "modify-version"); v != "" {
		return v
	}
	return defaultVersion
}

func stringArg(args *syntax.Normalized, name string) string {
	v, ok := args.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func boolArg(args *syntax.Normalized, name string) bool {
	v, _ := args.Get(name)
	b, _ := v.(bool)
	return b
}

func numberArg(args *syntax.Normalized, name string) (int, bool) {
	v, _ := args.Get(name)
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func stringsArg(args *syntax.Normalized, name string) []string {
	v, _ := args.Get(name)
	list, _ := v.([]string)
	return list
}

// Text renders the plan for a terminal.
func (p *Plan) Text() string {
	var sb strings.Builder
	sb.WriteString(p.Command + "\n")
	for i, r := range p.Requests {
		fmt.Fprintf(&sb, "  %d. %s %s\n", i+1, r.Method, r.Path)
		for _, key := range slices.Sorted(maps.Keys(r.Headers)) {
			fmt.Fprintf(&sb, "     %s: %s\n", key, r.Headers[key])
		}
		if r.Body != nil {
			fmt.Fprintf(&sb, "     body: %s\n", renderBody(r.Body))
		}
		if r.Note != "" {
			fmt.Fprintf(&sb, "     (%s)\n", r.Note)
		}
	}
	if p.Output != nil {
		dir := p.Output.Directory
		if !p.Output.OmitJobIDDirectory {
			dir += "/" + JobIDPlaceholder
		}
		fmt.Fprintf(&sb, "  output: %s/*%s\n", dir, p.Output.Extension)
	}
	return sb.String()
}

func renderBody(body any) string {
	if s, ok := body.(string); ok {
		return s
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprint(body)
	}
	return string(data)
}
