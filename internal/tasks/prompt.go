package tasks

import (
	"fmt"
	"net/url"
	"strings"

	"setlift/internal/services"
)

const tracklistSearchBase = "https://www.1001tracklists.com/search/"

// TracklistSearchURL builds a 1001Tracklists search URL for an artist/event pair.
// The URL is embedded in the extraction prompt so the model can visit a
// pre-built query instead of guessing one.
func TracklistSearchURL(artist, event string) string {
	query := strings.TrimSpace(artist + " " + event)
	if query == "" {
		return ""
	}
	return tracklistSearchBase + "?query=" + url.QueryEscape(query)
}

const promptSchema = `{
  "artist": "string",
  "event": "string",
  "stage": "string | null",
  "date": "YYYY-MM-DD",
  "location": "string | null",
  "description": "string | null",
  "duration": "Xh Ym",
  "bpmRange": "XXX-XXX",
  "mainGenre": "string",
  "youtubeUrl": "string | null",
  "tracklist": [
    {
      "startTime": "MM:SS",
      "title": "Track Name",
      "artist": "Artist Name",
      "bpm": 128,
      "genre": "Techno",
      "tone": "8A",
      "energy": "Peak",
      "notes": null
    }
  ],
  "totalTracks": 0,
  "unidentifiedTracks": 0
}`

const promptMethodology = `RESEARCH METHODOLOGY:

1. FIND THE SOURCE (step by step):
   - STEP 1: Search Google for "site:1001tracklists.com [artist] [event]"
   - STEP 2: If the tracklist is on 1001Tracklists, use it as the primary source (it carries BPMs and keys)
   - STEP 3: If not, search "site:set79.com [artist] [event]"
   - STEP 4: If the reference is a video with timestamps in the description, use them for track start times
   - STEP 5: For missing BPMs, look up each track on Beatport or 1001Tracklists
   - 1001Tracklists and Set79 are the ONLY reliable sources for BPM and key

2. HARD DATA EXTRACTION:
   - startTime: at what minute does each track come in?
   - title and artist for each track; identify specific remixes
   - BPM: copy exact values when the tracklist is on 1001Tracklists or Set79.
     When no exact BPM is found, estimate from the genre:
       Techno: 125-135, Tech House: 120-128, Trance: 130-140, Melodic Techno: 120-125
   - tone/key: copy Camelot-format keys from 1001Tracklists, or Beatport as a fallback.
     Use null when nothing is found; never invent keys.

3. CURATORIAL ANALYSIS:
   - genre: Tech House, Melodic Techno, Trance, etc.
   - energy: assign by position in the set:
       "Intro" for opening tracks, "Groove" for the development,
       "Peak" for the high point, "Buildup" for rising tension,
       "Anthem" for well-known classics, "Cierre" for closing tracks

4. FINAL COMPILATION:
   - Extract every track you can find, plus all event metadata, as JSON.

IMPORTANT:
- Use Google Search to find the information
- ABSOLUTE PRIORITY: find the tracklist on 1001Tracklists.com or Set79.com and copy exact BPMs and keys
- Use null for any value you cannot find after searching
- Respond ONLY with valid JSON, no surrounding text
- If no tracklist is available, use an empty array []`

// ExtractionPrompt builds the retrieval-grounded instruction for extracting a
// set record from a reference URL. Resolved video metadata and a pre-built
// tracklist search URL are embedded as context when available.
func ExtractionPrompt(reference string, meta *services.VideoMetadata, searchURL string) string {
	var b strings.Builder

	b.WriteString("You are an expert electronic music researcher specializing in DJ sets. ")
	b.WriteString("Your task is to find and extract ALL information about a set using Google searches.\n\n")
	fmt.Fprintf(&b, "Reference URL: %s\n", reference)

	if meta != nil {
		b.WriteString("\nVIDEO INFORMATION:\n")
		fmt.Fprintf(&b, "- Title: %s\n", meta.Title)
		fmt.Fprintf(&b, "- Channel: %s\n", meta.Author)
		b.WriteString("\nUse this as the basis for your search. The video title usually contains the DJ name, event, and date.\n")
	}

	if searchURL != "" {
		b.WriteString("\nDIRECT TRACKLIST SEARCH:\n")
		fmt.Fprintf(&b, "A search has been prepared for you: %s\n", searchURL)
		b.WriteString("Visit this search, find the matching tracklist in the results, open it, and copy the exact BPMs and keys for every track. If it is not there, search Set79.com.\n")
	}

	b.WriteString("\n")
	b.WriteString(promptMethodology)
	b.WriteString("\n\nExpected response format:\n")
	b.WriteString(promptSchema)
	b.WriteString("\n")

	return b.String()
}

// FreeTextPrompt builds the instruction for extracting a set record from
// pasted text (a copied tracklist or set description) rather than a URL.
func FreeTextPrompt(text, referenceURL string) string {
	var b strings.Builder

	b.WriteString("You are an expert electronic music researcher specializing in DJ sets. ")
	b.WriteString("Analyze the following pasted text (a tracklist or set description) and extract ALL set information.\n\n")

	if referenceURL != "" {
		fmt.Fprintf(&b, "Reference URL: %s\n\n", referenceURL)
	}

	b.WriteString("TEXT:\n")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString("Parse every track line you can identify (timestamps, titles, artists, remix annotations). ")
	b.WriteString("Use Google Search to fill in missing event metadata, BPMs, and keys, following the same methodology.\n\n")
	b.WriteString(promptMethodology)
	b.WriteString("\n\nExpected response format:\n")
	b.WriteString(promptSchema)
	b.WriteString("\n")

	return b.String()
}
