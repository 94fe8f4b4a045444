package lookup

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nerrad567/device-timeline/internal/device"
)

// releasePatterns are tried in order; the first in-range match wins.
var releasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)released in (\d{4})`),
	regexp.MustCompile(`(?i)launched in (\d{4})`),
	regexp.MustCompile(`(?i)introduced in (\d{4})`),
	regexp.MustCompile(`(?i)debuted in (\d{4})`),
	regexp.MustCompile(`(?i)first released in (\d{4})`),
	regexp.MustCompile(`(?i)(\d{4}) release`),
	regexp.MustCompile(`(?i)released on [^,]*, (\d{4})`),
	regexp.MustCompile(`(?i)released [^,]* (\d{4})`),
	regexp.MustCompile(`(?i)^.*?(\d{4}).*?(?:released|launched|introduced|unveiled)`),
}

// ExtractReleaseYear finds a plausible release year in text.
// Years outside [device.MinYear, now.Year()] are ignored.
func ExtractReleaseYear(text string, now time.Time) *int {
	for _, re := range releasePatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year >= device.MinYear && year <= now.Year() {
			return &year
		}
	}
	return nil
}

// categoryKeywords is checked in category declaration order.
var categoryKeywords = []struct {
	category device.Category
	keywords []string
}{
	{device.CategorySmartphone, []string{"smartphone", "mobile phone", "iphone", "android phone", "cell phone"}},
	{device.CategoryLaptop, []string{"laptop", "notebook", "macbook", "ultrabook"}},
	{device.CategoryDesktop, []string{"desktop computer", "pc", "personal computer", "workstation"}},
	{device.CategoryTablet, []string{"tablet", "ipad", "android tablet"}},
	{device.CategorySmartwatch, []string{"smartwatch", "smart watch", "apple watch", "wearable"}},
	{device.CategoryGaming, []string{"game console", "gaming console", "playstation", "xbox", "nintendo"}},
	{device.CategoryAudio, []string{"headphones", "earbuds", "speaker", "sound system", "audio device"}},
	{device.CategoryCamera, []string{"camera", "digital camera", "dslr", "mirrorless"}},
}

// DetectCategory guesses a category from keywords in the title and description.
func DetectCategory(title, description string) device.Category {
	text := strings.ToLower(title + " " + description)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(text, kw) {
				return ck.category
			}
		}
	}
	return device.CategoryOther
}
