// Copyright © 2023 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package checker

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/grammar/sids"
	"github.com/sealerio/cgnsval/pkg/scope"
	"github.com/sealerio/cgnsval/pkg/tree"
	"github.com/sealerio/cgnsval/pkg/walker"
)

var grammarDir = filepath.Join("testdata", "grammars")

func treeFile(name string) string {
	return filepath.Join("testdata", "trees", name)
}

func keys(res *walker.Result, severity diagnostic.Severity) []string {
	var got []string
	for _, d := range res.Log.Diagnostics() {
		if d.Severity == severity {
			got = append(got, d.Key+" "+d.Path)
		}
	}
	return got
}

func newChecker(grammars ...string) *Checker {
	c, err := New(Options{Grammars: grammars, SearchPath: []string{grammarDir}, Jobs: 2})
	Expect(err).NotTo(HaveOccurred())
	return c
}

func init() {
	// Cells is an in-process user grammar: it delegates Zone_t to S and adds
	// one warning when the zone has no cells counted.
	grammar.RegisterFactory("Cells", func(r *grammar.Registry) (grammar.Interface, error) {
		base, ok := r.Get(sids.ID)
		if !ok {
			return nil, errors.New("standard grammar is not registered")
		}
		g := grammar.New("Cells", diagnostic.MustCatalog(
			diagnostic.Warning("C101", "Zone [%s] has no cell count"),
		))
		g.Handle("Zone_t", func(v *grammar.Visit) diagnostic.Status {
			st := grammar.Delegate(base, v)
			if _, ok := v.Context.Int(scope.CellCount); !ok {
				st = st.Worst(v.Push("C101", v.Node.Name))
			}
			return st
		})
		return g, nil
	})
}

var _ = Describe("checker", func() {
	Context("with the built-in grammars", func() {
		It("finds nothing in a valid tree", func() {
			res, err := newChecker().Check(treeFile("tet.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Log.Diagnostics()).To(BeEmpty())
			Expect(res.Worst()).To(Equal(diagnostic.StatusGood))
			Expect(newChecker().Registry().IDs()).To(Equal([]string{"G", "S"}))
		})

		It("reports one error at the zone missing its mandatory child", func() {
			res, err := newChecker().Check(treeFile("no-zonetype.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(res, diagnostic.SeverityError)).To(Equal([]string{"S002 /Base/Zone"}))

			st, ok := res.StatusOf("/Base/Zone")
			Expect(ok).To(BeTrue())
			Expect(st).To(Equal(diagnostic.StatusFail))
			st, _ = res.StatusOf("/")
			Expect(st).To(Equal(diagnostic.StatusFail))
		})

		It("fails the run when the root children are not a sequence", func() {
			res, err := newChecker().Check(treeFile("malformed.yaml"))
			Expect(errors.Is(err, tree.ErrMalformedTree)).To(BeTrue())
			Expect(res).To(BeNil())
		})

		It("reports a missing file as a run error", func() {
			_, err := newChecker().Check(treeFile("absent.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with user grammars", func() {
		It("applies a non delegating grammar after S", func() {
			c := newChecker("M")
			Expect(c.Registry().IDs()).To(Equal([]string{"G", "S", "M"}))

			res, err := c.Check(treeFile("mach.json"))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Log.Diagnostics()).To(HaveLen(1))
			d := res.Log.Diagnostics()[0]
			Expect(d.Key).To(Equal("M101"))
			Expect(d.Path).To(Equal("/Mesh/Tet/ReferenceState/Mach"))
			Expect(d.Message).To(Equal("Value [1.5] of [Mach] is not subsonic"))
			Expect(res.Worst()).To(Equal(diagnostic.StatusWarning))
		})

		It("keeps every S diagnostic when a grammar delegates to S", func() {
			standard, err := newChecker().Check(treeFile("no-zonetype.yaml"))
			Expect(err).NotTo(HaveOccurred())
			extended, err := newChecker("U").Check(treeFile("no-zonetype.yaml"))
			Expect(err).NotTo(HaveOccurred())

			// S runs on its own and once more through U.
			own := standard.Log.Diagnostics()
			Expect(extended.Log.Diagnostics()).To(HaveLen(2 * len(own)))
			for _, d := range own {
				Expect(extended.Log.Diagnostics()).To(ContainElement(d))
			}
			Expect(keys(extended, diagnostic.SeverityError)).To(Equal([]string{"S002 /Base/Zone", "S002 /Base/Zone"}))
		})

		It("conditions user rules on the context set by S", func() {
			res, err := newChecker("U").Check(treeFile("tet.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(res, diagnostic.SeverityError)).To(Equal([]string{"U101 /Mesh/Tet"}))
			Expect(res.Log.Diagnostics()[0].Message).To(Equal("Zone [Tet] has no child of type [FlowSolution_t]"))
		})

		It("runs in-process factories", func() {
			res, err := newChecker("Cells").Check(treeFile("no-zonetype.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(keys(res, diagnostic.SeverityWarning)).To(ContainElement("C101 /Base/Zone"))
			Expect(keys(res, diagnostic.SeverityError)).To(Equal([]string{"S002 /Base/Zone", "S002 /Base/Zone"}))
		})

		It("rejects grammars that cannot be loaded", func() {
			_, err := New(Options{Grammars: []string{"Broken", "Other", "Nowhere"}, SearchPath: []string{grammarDir}})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, grammar.ErrInvalidGrammarExtension)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Broken"))
			Expect(err.Error()).To(ContainSubstring("NotOther"))
			Expect(err.Error()).To(ContainSubstring("Nowhere"))
		})

		It("skips grammars that cannot be loaded when asked to", func() {
			c, err := New(Options{
				Grammars:              []string{"Broken", "M", "Nowhere"},
				SearchPath:            []string{grammarDir},
				IgnoreExtensionErrors: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Registry().IDs()).To(Equal([]string{"G", "S", "M"}))
		})
	})

	Context("listing", func() {
		It("lists a user grammar in declaration order with templates intact", func() {
			entries, err := ListCatalog("U", Options{SearchPath: []string{grammarDir}})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal([]diagnostic.Entry{
				diagnostic.Error("U101", "Zone [%s] has no child of type [%s]"),
				diagnostic.Warning("U102", "Value [%s] of [%s] is out of range"),
				diagnostic.Error("U103", "Node [%s] of type [%s] is not allowed here"),
			}))
		})

		It("lists the built-in grammars", func() {
			entries, err := ListCatalog("S", Options{SearchPath: []string{grammarDir}})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal(sids.New().Catalog().Entries()))
		})

		It("fails for an unknown grammar", func() {
			_, err := ListCatalog("Nowhere", Options{SearchPath: []string{grammarDir}})
			Expect(errors.Is(err, grammar.ErrUnknownGrammar)).To(BeTrue())
		})

		It("lists every available grammar", func() {
			gs, err := AvailableGrammars(Options{SearchPath: []string{grammarDir}})
			Expect(err).NotTo(HaveOccurred())
			Expect(gs.BuiltIn).To(Equal([]string{"G", "S"}))
			Expect(gs.Discoverable).To(Equal([]string{"Broken", "Cells", "M", "Other", "U"}))
		})
	})

	Context("several files", func() {
		It("keeps the input order and isolates file errors", func() {
			files := []string{treeFile("mach.json"), treeFile("malformed.yaml"), treeFile("tet.yaml")}
			var done []string
			results, err := newChecker("M").CheckFiles(context.Background(), files, func(r FileResult) {
				done = append(done, r.File)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(done).To(ConsistOf(files))
			Expect(results).To(HaveLen(3))
			for i, r := range results {
				Expect(r.File).To(Equal(files[i]))
			}
			Expect(results[0].Err).NotTo(HaveOccurred())
			Expect(results[0].Result.Log.Len()).To(Equal(1))
			Expect(errors.Is(results[1].Err, tree.ErrMalformedTree)).To(BeTrue())
			Expect(results[2].Result.Log.Len()).To(BeZero())
		})

		It("stops when the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := newChecker().CheckFiles(ctx, []string{treeFile("tet.yaml")}, nil)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})
})
