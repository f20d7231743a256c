package rulebased

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubescribe/pkg/models"
)

const sampleText = `안녕하세요 오늘은 파이썬 프로그래밍에 대해서 이야기해보겠습니다.

파이썬은 정말 강력하고 사용하기 쉬운 프로그래밍 언어입니다. 많은 개발자들이 파이썬을 사용하고 있습니다.

첫 번째로 파이썬의 문법은 매우 직관적입니다. 들여쓰기를 사용해서 코드 블록을 구분하기 때문에 읽기 쉬운 코드를 작성할 수 있습니다.

두 번째로 파이썬에는 다양한 라이브러리가 있습니다. 여러 분야에서 사용할 수 있는 라이브러리들이 풍부하게 제공됩니다.

마지막으로 파이썬은 머신러닝과 데이터 분석 분야에서 특히 인기가 높습니다. 딥러닝 프레임워크도 파이썬으로 개발되었습니다.`

func attempt(t *testing.T, mode models.SummaryMode, text string) *models.SummaryResult {
	t.Helper()
	res, err := New().Attempt(context.Background(), mode, text)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestKeySummaryOnePerParagraph(t *testing.T) {
	res := attempt(t, models.ModeKeySummary, sampleText)

	require.Len(t, res.KeySummary, 5)
	for _, p := range res.KeySummary {
		assert.NotEmpty(t, p.ParagraphSummary)
	}
}

func TestKeySummaryShortParagraphVerbatim(t *testing.T) {
	res := attempt(t, models.ModeKeySummary, "아주 짧은 문단입니다.\n\n이것도 마찬가지로 짧습니다.")

	require.Len(t, res.KeySummary, 2)
	assert.Equal(t, "아주 짧은 문단입니다.", res.KeySummary[0].ParagraphSummary)
}

func TestKeySummarySingleSegmentFallback(t *testing.T) {
	// Five sentences with no blank-line breaks collapse to one paragraph
	// combining the first sentence with the longest remaining one.
	text := "첫 번째 문장은 여기서 시작하게 됩니다. " +
		"두 번째 문장도 충분히 길게 작성했습니다. " +
		"세 번째 문장은 이 테스트에서 가장 길게 작성된 문장이라서 반드시 선택되어야 합니다. " +
		"네 번째 문장도 스무 글자를 넘습니다. " +
		"다섯 번째 문장으로 마무리를 하겠습니다."

	res := attempt(t, models.ModeKeySummary, text)

	require.Len(t, res.KeySummary, 1)
	s := res.KeySummary[0].ParagraphSummary
	assert.Contains(t, s, "첫 번째 문장은 여기서 시작하게 됩니다")
	assert.Contains(t, s, "가장 길게 작성된 문장")
	assert.NotContains(t, s, "두 번째")
}

func TestKeySummaryNearEmptyPlaceholder(t *testing.T) {
	res := attempt(t, models.ModeKeySummary, "짧음")

	require.Len(t, res.KeySummary, 1)
	assert.Equal(t, placeholderSummary, res.KeySummary[0].ParagraphSummary)
}

func TestCuratorShape(t *testing.T) {
	res := attempt(t, models.ModeCurator, sampleText)

	cs := res.Curator
	require.NotNil(t, cs)
	assert.Contains(t, cs.Title, "파이썬 프로그래밍")
	assert.NotEmpty(t, cs.OneLineSummary)
	assert.GreaterOrEqual(t, len(cs.KeyPoints), 1)
	assert.LessOrEqual(t, len(cs.KeyPoints), 3)
}

func TestCuratorLongTitleTruncated(t *testing.T) {
	long := strings.Repeat("아주 긴 단어들이 ", 20) + "계속 이어지는 제목 문장입니다"
	res := attempt(t, models.ModeCurator, long+". 두 번째 문장도 충분히 깁니다.")

	assert.True(t, strings.HasSuffix(res.Curator.Title, "..."))
	assert.LessOrEqual(t, len(strings.Fields(res.Curator.Title)), 11)
}

func TestCuratorKeyPointsNoNearDuplicates(t *testing.T) {
	text := "파이썬은 강력하고 쉬운 언어라서 좋습니다. " +
		"파이썬은 강력하고 쉬운 언어라서 참 좋습니다. " +
		"자바스크립트는 웹 개발에서 널리 쓰이는 언어입니다. " +
		"고 언어는 동시성 프로그래밍에 강점이 있습니다. " +
		"러스트는 메모리 안전성을 보장하는 시스템 언어입니다."

	res := attempt(t, models.ModeCurator, text)

	points := res.Curator.KeyPoints
	require.NotEmpty(t, points)
	for i, a := range points {
		for _, b := range points[i+1:] {
			assert.False(t, overlapsAny(a, []string{b}),
				"points %q and %q share too many words", a, b)
		}
	}
}

func TestCuratorThreeSentencesStillDeduped(t *testing.T) {
	text := "갈색 여우가 게으른 강아지를 오늘 가볍게 뛰어넘었습니다. " +
		"갈색 여우가 게으른 강아지를 어제 가볍게 뛰어넘었습니다. " +
		"하스켈은 순수 함수형 프로그래밍 언어입니다."

	res := attempt(t, models.ModeCurator, text)

	points := res.Curator.KeyPoints
	require.Len(t, points, 2)
	for i, a := range points {
		assert.False(t, overlapsAny(a, append([]string{}, points[:i]...)),
			"point %q overlaps an earlier point", a)
	}
}

func TestCuratorFewSentencesAllUsed(t *testing.T) {
	text := "첫 문장은 열 글자를 넘습니다. 둘째 문장도 열 글자를 넘습니다."

	res := attempt(t, models.ModeCurator, text)

	assert.Len(t, res.Curator.KeyPoints, 2)
}

func TestCuratorNearEmptyPlaceholder(t *testing.T) {
	res := attempt(t, models.ModeCurator, "짧은 입력")

	require.NotNil(t, res.Curator)
	assert.Equal(t, placeholderSummary, res.Curator.Title)
	assert.Equal(t, []string{placeholderSummary}, res.Curator.KeyPoints)
}

func TestTimelineCapAndTimestampPattern(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "이것은 %d번째로 작성된 충분히 긴 테스트 문장입니다. ", i)
	}

	res := attempt(t, models.ModeTimeline, sb.String())

	require.NotEmpty(t, res.Timeline)
	assert.LessOrEqual(t, len(res.Timeline), 8)

	pattern := regexp.MustCompile(`^(\d+)-(\d+)분$`)
	for i, section := range res.Timeline {
		m := pattern.FindStringSubmatch(section.Timestamp)
		require.NotNil(t, m, "timestamp %q", section.Timestamp)
		assert.Equal(t, fmt.Sprintf("%d-%d분", 3*i+1, 3*(i+1)), section.Timestamp)
		assert.NotEmpty(t, section.Subtitle)
		assert.NotEmpty(t, section.Summary)
		assert.NotEmpty(t, section.OnelineSummary)
	}
}

func TestTimelineNearEmptyInputYieldsEmptySequence(t *testing.T) {
	res := attempt(t, models.ModeTimeline, "열아홉 글자 미만")

	require.NotNil(t, res.Timeline)
	assert.Empty(t, res.Timeline)
}

func TestTimelineKeywords(t *testing.T) {
	text := "파이썬 언어는 배우기 쉽습니다 파이썬 언어로 데이터 분석을 합니다. " +
		"파이썬 커뮤니티는 데이터 분석 자료를 많이 공유합니다. " +
		"데이터 분석 강의도 파이썬 기반으로 진행되는 경우가 많습니다."

	res := attempt(t, models.ModeTimeline, text)

	require.NotEmpty(t, res.Timeline)
	keywords := res.Timeline[0].Keywords
	assert.LessOrEqual(t, len(keywords), 4)
	assert.Contains(t, keywords, "파이썬")
	assert.Contains(t, keywords, "데이터")
}

func TestUnknownModeRejected(t *testing.T) {
	_, err := New().Attempt(context.Background(), models.SummaryMode("bogus"), "텍스트")
	assert.Error(t, err)
}

func TestGroupSentences(t *testing.T) {
	short := []string{"하나", "둘", "셋", "넷", "다섯", "여섯"}
	groups := groupSentences(short)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 4)
	assert.Len(t, groups[1], 2)

	long := []string{strings.Repeat("가", 250), strings.Repeat("나", 250)}
	groups = groupSentences(long)
	assert.Len(t, groups, 2)
}

func TestColloquialize(t *testing.T) {
	assert.Equal(t, "코드를 작성해요", colloquialize("코드를 작성합니다."))
	assert.Equal(t, "시작할게요", colloquialize("시작하겠습니다."))
	assert.Equal(t, "이것은 테스트이에요", colloquialize("이것은 테스트입니다."))
	assert.Equal(t, "좋은 하루에 대한 내용입니다", colloquialize("좋은 하루"))
	assert.Equal(t, "", colloquialize("   "))
}

func TestExtractKeywordsFiltersStopwordsAndSingles(t *testing.T) {
	text := "그리고 파이썬 파이썬 좀 좀 분석 분석 한 한 단독"

	keywords := extractKeywords(text)

	assert.Contains(t, keywords, "파이썬")
	assert.Contains(t, keywords, "분석")
	assert.NotContains(t, keywords, "그리고")
	assert.NotContains(t, keywords, "좀")
	assert.NotContains(t, keywords, "한")
	assert.NotContains(t, keywords, "단독")
}
