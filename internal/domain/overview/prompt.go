package overview

import "fmt"

const promptTemplate = `You are a helpful assistant that writes clear, concise summaries of web content.
Based on the search results and content from %s, write a brief but comprehensive overview.

Focus on:
- The main purpose or value proposition
- Key features or main points
- Target audience or use cases
- What makes it unique or noteworthy

Format the response in markdown and keep it under %d words. Make it engaging and informative.

Context from the webpage:
%s`

func buildPrompt(url string, results SearchResults, maxWords int) string {
	return fmt.Sprintf(promptTemplate, url, maxWords, render(results))
}
