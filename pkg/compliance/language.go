// Copyright (c) 2025, The Tally Authors.  All rights reserved.
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

package compliance

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// languageDisplays covers implementation languages whose conventional
// rendering is not a plain title casing.
var languageDisplays = map[string]string{
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"nodejs":     "Node.js",
	"dotnet":     ".NET",
	"csharp":     "C#",
	"cpp":        "C++",
	"c++":        "C++",
	"php":        "PHP",
}

// LanguageDisplay renders an implementation language for humans, e.g.
// "javascript" becomes "JavaScript" and "rust" becomes "Rust".
func LanguageDisplay(lang string) string {
	if lang == "" {
		return ""
	}
	if display, found := languageDisplays[strings.ToLower(lang)]; found {
		return display
	}
	return cases.Title(language.English).String(lang)
}
