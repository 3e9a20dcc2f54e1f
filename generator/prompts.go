package generator

import (
	"encoding/json"
	"fmt"
)

func keywordsPrompt(seed string) Completion {
	return Completion{
		Prompt: fmt.Sprintf(`Generate 5 SEO-focused keywords related to: "%s"

Requirements:
- Include long-tail keywords
- Focus on commercial intent when appropriate
- Avoid overly competitive terms
- Return a JSON array only, without markdown code fences

Format: ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"]`, seed),
		Temperature: 0.7,
		MaxTokens:   200,
	}
}

func titlesPrompt(keyword, tone string) Completion {
	return Completion{
		Prompt: fmt.Sprintf(`Create 3 SEO-optimized blog titles for the keyword: "%s"

Requirements:
- Include the target keyword naturally
- 50-60 characters is the ideal length
- %s tone
- Click-worthy and engaging
- Follow SEO best practices

Return a JSON array only: ["title1", "title2", "title3"]`, keyword, tone),
		Temperature: 0.8,
		MaxTokens:   300,
	}
}

func topicsPrompt(title, keyword string) Completion {
	return Completion{
		Prompt: fmt.Sprintf(`Create 2 detailed blog outlines for the title: "%s"
Target keyword: "%s"

Structure each outline as:
{
    "title": "outline variation name",
    "sections": [
        {
            "heading": "section heading",
            "points": ["key point 1", "key point 2", "key point 3"]
        }
    ]
}

Return a JSON array with the 2 outline variations only.`, title, keyword),
		Temperature: 0.7,
		MaxTokens:   800,
	}
}

func contentPrompt(req ContentRequest) Completion {
	outline := "None provided"
	if len(req.Outline) > 0 && string(req.Outline) != "null" {
		if compact, err := json.Marshal(req.Outline); err == nil {
			outline = string(compact)
		}
	}

	return Completion{
		Prompt: fmt.Sprintf(`Write a %s for:
Title: "%s"
Target keyword: "%s"
Outline: %s

Requirements:
- Approximately %d words
- Include the target keyword naturally 2-3 times
- Engaging and informative tone
- SEO-optimized structure
- Ready for publication

Return clean, formatted plain text only.`, req.ContentType, req.Title, req.Keyword, outline, req.WordCount),
		Temperature: 0.7,
		MaxTokens:   req.WordCount * 2,
	}
}
