// planflow drives a full edit-session against a running API: build a plan
// through the transition functions, create it, tweak it the way an operator
// would, update, list and fetch it back. Useful as an end-to-end smoke test
// of the wire contract without a frontend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"planservice/internal/plan"
	"planservice/pkg/config"
	"planservice/pkg/planclient"
)

func main() {
	var (
		baseURL  = flag.String("base-url", "", "plan service base url (defaults to http://localhost<HTTP_ADDR>)")
		school   = flag.String("school", "", "school domain (e.g. escola-exemplo.app.br)")
		courseID = flag.String("course-id", "", "course id the plan belongs to")
		name     = flag.String("name", "Tabela planflow", "plan name")
		total    = flag.String("total", "1200.00", "plan total value")
		keep     = flag.Bool("keep", false, "leave the created plan in place (skip delete)")
	)
	flag.Parse()

	if *school == "" || *courseID == "" {
		fmt.Fprintln(os.Stderr, "missing -school or -course-id")
		os.Exit(2)
	}

	cfg := config.Load()
	if *baseURL == "" {
		*baseURL = defaultBaseURL(cfg.HTTPAddr)
	}

	client := planclient.Client{
		BaseURL:      *baseURL,
		SchoolDomain: *school,
	}

	ctx := context.Background()

	// Operator flow: new plan, set total (derives the default row), add a
	// second row at 3 installments, attach a promotional clause.
	p := plan.New(*courseID)
	p.Name = *name
	p = p.WithTotal(*total)
	p = p.AddOption()
	p = p.WithInstallments(2, 3)
	p = p.AddTerm(plan.Term{Label: "Promoção", Text: "Condição válida para matrículas no mês corrente."})

	if !p.CanSubmit() {
		fmt.Fprintln(os.Stderr, "plan failed the discount gate before submit")
		os.Exit(1)
	}

	created, err := client.CreatePlan(ctx, p)
	if err != nil {
		fail("create", err)
	}
	fmt.Printf("created plan %s (%s)\n", created.ID, created.Name)
	dump(created)

	// Second session: load, change the total, push the update.
	loaded, err := client.GetPlan(ctx, created.ID)
	if err != nil {
		fail("get", err)
	}
	loaded = loaded.WithTotal("1500.00")
	updated, err := client.UpdatePlan(ctx, loaded)
	if err != nil {
		fail("update", err)
	}
	fmt.Println("updated totals:")
	dump(updated)

	page, err := client.ListPlans(ctx, planclient.ListOptions{CourseID: *courseID, PerPage: 5})
	if err != nil {
		fail("list", err)
	}
	fmt.Printf("course has %d plan(s)\n", page.Total)

	if !*keep {
		if err := client.DeletePlan(ctx, created.ID); err != nil {
			fail("delete", err)
		}
		fmt.Println("cleaned up")
	}
}

func dump(p plan.Plan) {
	for _, i := range sortedKeys(p.Options) {
		o := p.Options[i]
		fmt.Printf("  opção %d: %dx de %s (desconto %s)\n", i, o.Installments, orDash(o.Value), orDash(o.Discount))
	}
}

func sortedKeys(options map[int]plan.Option) []int {
	out := make([]int, 0, len(options))
	for i := range options {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fail(step string, err error) {
	var verr *planclient.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "%s rejected:\n%s\n", step, verr.Summary())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s failed: %v\n", step, err)
	os.Exit(1)
}

func defaultBaseURL(httpAddr string) string {
	addr := httpAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
