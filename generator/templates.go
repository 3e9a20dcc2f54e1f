package generator

import (
	"fmt"
	"strings"
)

var titleTemplates = map[string][]string{
	"professional": {
		"The Complete Guide to %s",
		"%s: Best Practices and Expert Tips",
		"How to Master %s Step by Step",
	},
	"casual": {
		"Everything You Need to Know About %s",
		"%s Made Simple",
		"The Ultimate %s Handbook",
	},
	"friendly": {
		"Your Friendly Guide to %s",
		"Let's Talk About %s",
		"%s: A Beginner's Journey",
	},
}

var contentTemplates = map[string]string{
	"blog_intro": `In today's digital landscape, understanding %[1]s has become essential for success. Whether you're new to %[1]s or looking to enhance your existing knowledge, this comprehensive guide will provide you with valuable insights and practical strategies.

%[1]s plays a crucial role in modern business and technology. By implementing the right approach to %[1]s, you can achieve significant improvements in your results and overall performance.

Throughout this guide, we'll explore the fundamental concepts of %[1]s, share expert tips, and provide actionable advice that you can implement immediately. Our goal is to help you master %[1]s and use it effectively to achieve your objectives.

The importance of %[1]s cannot be overstated. As we continue to evolve in this digital age, having a solid understanding of %[1]s will set you apart from the competition and position you for long-term success.`,

	"meta_description": `Discover everything you need to know about %[1]s. Our comprehensive guide covers best practices, expert tips, and actionable strategies to help you master %[1]s effectively.`,

	"product_description": `Transform your approach with our comprehensive %[1]s solution. Designed for professionals and beginners alike, this resource provides everything you need to succeed with %[1]s. Get started today and see immediate results.`,

	"landing_page": `Ready to master %[1]s? You're in the right place. Our proven approach has helped thousands of users achieve success with %[1]s. Don't let another day pass without taking action. Start your journey today and join the ranks of %[1]s experts who are already seeing incredible results.`,
}

const contentExtension = `

Exploring %[1]s further reveals numerous opportunities for growth and improvement. By implementing the strategies outlined in this guide, you'll be well-equipped to navigate the complexities of %[1]s and achieve your desired outcomes.`

func fallbackKeywords(seed string) []string {
	return []string{
		seed + " guide",
		"best " + seed + " practices",
		seed + " tips and tricks",
		"how to " + seed,
		seed + " strategy",
	}
}

func fallbackTitles(keyword, tone string) []string {
	templates, ok := titleTemplates[tone]
	if !ok {
		templates = titleTemplates[DefaultTone]
	}

	titles := make([]string, len(templates))
	for i, tmpl := range templates {
		titles[i] = fmt.Sprintf(tmpl, keyword)
	}
	return titles
}

func fallbackTopics(keyword string) []Outline {
	return []Outline{
		{
			Title: "Comprehensive Overview",
			Sections: []Section{
				{Heading: "Introduction to " + keyword, Points: []string{"Definition and importance", "Key benefits", "Common misconceptions"}},
				{Heading: "Getting Started", Points: []string{"Prerequisites", "Basic setup", "First steps"}},
				{Heading: "Best Practices", Points: []string{"Industry standards", "Expert recommendations", "Common pitfalls"}},
			},
		},
		{
			Title: "Practical Implementation",
			Sections: []Section{
				{Heading: "Understanding " + keyword, Points: []string{"Core concepts", "Technical aspects", "Real-world applications"}},
				{Heading: "Implementation Strategy", Points: []string{"Step-by-step approach", "Tools and resources", "Measuring success"}},
				{Heading: "Advanced Techniques", Points: []string{"Expert strategies", "Optimization tips", "Future trends"}},
			},
		},
	}
}

// fallbackContent fills the template for the content type and fits it to
// roughly the requested word count.
func fallbackContent(req ContentRequest) string {
	tmpl, ok := contentTemplates[req.ContentType]
	if !ok {
		tmpl = contentTemplates[DefaultContentType]
	}
	content := fmt.Sprintf(tmpl, req.Keyword)

	words := strings.Fields(content)
	switch {
	case len(words) > req.WordCount:
		content = strings.Join(words[:req.WordCount], " ") + "..."
	case float64(len(words)) < float64(req.WordCount)*0.8:
		content += fmt.Sprintf(contentExtension, req.Keyword)
	}
	return content
}
