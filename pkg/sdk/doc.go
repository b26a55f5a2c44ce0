// Package resumerank provides an embeddable Go client for the resumerank
// pipeline: résumé extraction, contact parsing, deduplication, embedding
// similarity ranking, and fit summaries.
//
//	client, _ := resumerank.New(ctx,
//	    resumerank.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	    resumerank.WithTopK(3),
//	)
//	defer client.Close()
//
//	rec, _ := client.Recommend(ctx, "Senior Go engineer",
//	    resumerank.TextDocument("cand_1", resumeText),
//	    resumerank.FileDocument("cand_2", resumerank.FormatPDF, pdfBytes),
//	)
//	for _, c := range rec.Candidates {
//	    fmt.Println(c.Rank, c.Candidate.Name, c.Score)
//	}
//
// Without summary credentials (WithOpenAISummaries / WithSummaryGenerator)
// every summary uses a deterministic local template.
package resumerank
