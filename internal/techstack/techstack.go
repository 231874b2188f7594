// Package techstack normalizes technology names and resolves their icons.
package techstack

import (
	"math/rand/v2"
	"strings"
)

const (
	iconBaseURL  = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons"
	FallbackIcon = "/tech.svg"
)

// mappings resolves common spellings to a devicon slug
var mappings = map[string]string{
	"react.js":        "react",
	"reactjs":         "react",
	"react":           "react",
	"next.js":         "nextjs",
	"nextjs":          "nextjs",
	"next":            "nextjs",
	"vue.js":          "vuejs",
	"vuejs":           "vuejs",
	"vue":             "vuejs",
	"express.js":      "express",
	"expressjs":       "express",
	"express":         "express",
	"node.js":         "nodejs",
	"nodejs":          "nodejs",
	"node":            "nodejs",
	"mongodb":         "mongodb",
	"mongo":           "mongodb",
	"mongoose":        "mongoose",
	"mysql":           "mysql",
	"postgresql":      "postgresql",
	"sqlite":          "sqlite",
	"firebase":        "firebase",
	"docker":          "docker",
	"kubernetes":      "kubernetes",
	"aws":             "aws",
	"azure":           "azure",
	"gcp":             "gcp",
	"digitalocean":    "digitalocean",
	"heroku":          "heroku",
	"photoshop":       "photoshop",
	"adobe photoshop": "photoshop",
	"html5":           "html5",
	"html":            "html5",
	"css3":            "css3",
	"css":             "css3",
	"sass":            "sass",
	"scss":            "sass",
	"less":            "less",
	"tailwindcss":     "tailwindcss",
	"tailwind":        "tailwindcss",
	"bootstrap":       "bootstrap",
	"jquery":          "jquery",
	"typescript":      "typescript",
	"ts":              "typescript",
	"javascript":      "javascript",
	"js":              "javascript",
	"angular.js":      "angular",
	"angularjs":       "angular",
	"angular":         "angular",
	"ember.js":        "ember",
	"emberjs":         "ember",
	"ember":           "ember",
	"backbone.js":     "backbone",
	"backbonejs":      "backbone",
	"backbone":        "backbone",
	"nestjs":          "nestjs",
	"graphql":         "graphql",
	"graph ql":        "graphql",
	"apollo":          "apollo",
	"webpack":         "webpack",
	"babel":           "babel",
	"rollup.js":       "rollup",
	"rollupjs":        "rollup",
	"rollup":          "rollup",
	"parcel.js":       "parcel",
	"parceljs":        "parcel",
	"npm":             "npm",
	"yarn":            "yarn",
	"git":             "git",
	"github":          "github",
	"gitlab":          "gitlab",
	"bitbucket":       "bitbucket",
	"figma":           "figma",
	"prisma":          "prisma",
	"redux":           "redux",
	"flux":            "flux",
	"redis":           "redis",
	"selenium":        "selenium",
	"cypress":         "cypress",
	"jest":            "jest",
	"mocha":           "mocha",
	"chai":            "chai",
	"karma":           "karma",
	"vuex":            "vuex",
	"nuxt.js":         "nuxt",
	"nuxtjs":          "nuxt",
	"nuxt":            "nuxt",
	"strapi":          "strapi",
	"wordpress":       "wordpress",
	"contentful":      "contentful",
	"netlify":         "netlify",
	"vercel":          "vercel",
	"aws amplify":     "amplify",
}

var covers = []string{
	"/adobe.png",
	"/amazon.png",
	"/facebook.png",
	"/hostinger.png",
	"/pinterest.png",
	"/quora.png",
	"/reddit.png",
	"/skype.png",
	"/spotify.png",
	"/telegram.png",
	"/tiktok.png",
	"/yahoo.png",
}

// Icon is a technology name paired with its logo URL
type Icon struct {
	Tech string `json:"tech"`
	URL  string `json:"url"`
}

// Normalize returns the canonical slug for name and whether it is known.
// The lookup key is lowercased with a trailing ".js" and all whitespace removed.
func Normalize(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if slug, ok := mappings[key]; ok {
		return slug, true
	}
	key = strings.TrimSuffix(key, ".js")
	key = strings.Join(strings.Fields(key), "")
	slug, ok := mappings[key]
	return slug, ok
}

// Icons resolves a logo URL for each name, keeping input order
func Icons(names []string) []Icon {
	icons := make([]Icon, 0, len(names))
	for _, name := range names {
		url := FallbackIcon
		if slug, ok := Normalize(name); ok {
			url = iconBaseURL + "/" + slug + "/" + slug + "-original.svg"
		}
		icons = append(icons, Icon{Tech: name, URL: url})
	}
	return icons
}

// Split turns a comma separated list into trimmed, non-empty names
func Split(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// RandomCover picks one of the interview cover images
func RandomCover() string {
	return covers[rand.IntN(len(covers))]
}

// Covers returns a copy of the available cover images
func Covers() []string {
	return append([]string(nil), covers...)
}
