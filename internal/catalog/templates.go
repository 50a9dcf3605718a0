package catalog

import (
	"fmt"

	"diagnosis-service/internal/models"
)

// 5-point agreement scale shared by the marriage and stress templates.
func agree5(id, text string, reverse bool) models.Question {
	return models.Question{
		ID:   id,
		Text: text,
		Kind: models.KindChoice,
		Options: []models.Option{
			{Text: "전혀 그렇지 않다", Value: 1},
			{Text: "그렇지 않다", Value: 2},
			{Text: "보통이다", Value: 3},
			{Text: "그렇다", Value: 4},
			{Text: "매우 그렇다", Value: 5},
		},
		Reverse: reverse,
	}
}

// 4-point frequency scale used by the depression screening.
func freq4(id, text string) models.Question {
	return models.Question{
		ID:   id,
		Text: text,
		Kind: models.KindChoice,
		Options: []models.Option{
			{Text: "전혀 아니다", Value: 0},
			{Text: "가끔 그렇다", Value: 1},
			{Text: "자주 그렇다", Value: 2},
			{Text: "거의 매일 그렇다", Value: 3},
		},
	}
}

// Legacy yes/no/neutral question with fixed weights.
func ynq(id, text string, yes, no, neutral float64) models.Question {
	return models.Question{
		ID:     id,
		Text:   text,
		Kind:   models.KindYesNoNeutral,
		Scores: &models.ScoreTriple{Yes: yes, No: no, Neutral: neutral},
	}
}

func marriageTemplate() *models.Template {
	texts := []string{
		"배우자와 함께 있을 때 편안함을 느낀다",
		"배우자와의 대화가 즐겁다",
		"배우자는 나의 이야기를 끝까지 들어준다",
		"우리는 갈등이 생겨도 대화로 풀어간다",
		"배우자에게 고마움을 자주 느낀다",
		"배우자와 미래를 함께 계획하는 것이 기대된다",
		"배우자는 나를 있는 그대로 존중해 준다",
		"우리는 가사 분담에 대해 만족하고 있다",
		"배우자와의 스킨십이 자연스럽다",
		"힘든 일이 있을 때 가장 먼저 배우자가 떠오른다",
		"배우자의 가족과의 관계가 원만하다",
		"우리는 경제적인 문제를 함께 상의한다",
		"배우자와 보내는 주말이 기다려진다",
		"배우자는 나의 성장을 응원해 준다",
		"우리는 서로의 취미와 시간을 존중한다",
		"배우자에게 사랑한다는 표현을 자주 한다",
		"배우자와 의견이 달라도 서로를 비난하지 않는다",
		"우리 부부는 함께 웃는 일이 많다",
		"배우자와의 약속을 서로 잘 지킨다",
		"배우자에게 나의 속마음을 솔직하게 말할 수 있다",
		"우리는 자녀 문제에 대한 생각이 비슷하다",
		"배우자의 단점도 수용할 수 있다",
		"부부 관계에서 내가 존중받고 있다고 느낀다",
		"배우자와 함께하는 식사 시간이 즐겁다",
		"우리는 서로의 일을 지지하고 격려한다",
		"배우자와 다툰 후 화해가 오래 걸리지 않는다",
		"배우자는 기념일이나 특별한 날을 함께 챙긴다",
		"지금의 결혼 생활을 다시 선택하라고 해도 같은 선택을 할 것이다",
		"배우자와 함께 있으면 외롭지 않다",
		"우리의 결혼 생활이 앞으로 더 좋아질 것이라고 믿는다",
	}
	qs := make([]models.Question, 0, len(texts))
	for i, txt := range texts {
		qs = append(qs, agree5(fmt.Sprintf("m%02d", i+1), txt, false))
	}
	return &models.Template{
		ID:        "marriage",
		Title:     "결혼생활 만족도 진단",
		Subtitle:  "우리 부부의 현재 감정 상태를 확인해 보세요",
		Price:     "무료",
		Scoring:   models.ScoringNormalized,
		Questions: qs,
		Bands: []models.Band{
			{MinScore: 81, Message: "서로에 대한 깊은 신뢰와 애정이 느껴지는 안정적인 결혼 생활입니다. 지금처럼 서로를 향한 표현을 이어가 보세요."},
			{MinScore: 61, Message: "전반적으로 긍정적인 감정이 우세한 상태입니다. 작은 감사 표현이 더해지면 관계가 한층 깊어질 수 있어요."},
			{MinScore: 51, Message: "중립적 감정 상태입니다. 관계가 나쁘지는 않지만, 서로의 마음을 확인하는 대화 시간이 필요해 보여요."},
			{MinScore: 31, Message: "불만족 신호가 쌓이고 있어요. 감정 카드를 주고받으며 서로의 속마음을 나눠 보는 것을 권해요."},
			{MinScore: 0, Message: "관계 회복을 위한 적극적인 노력이 필요한 시기예요. 전문가 상담 콘텐츠를 함께 살펴보세요."},
		},
		SingleCompletion: true,
		GuestAllowed:     true,
	}
}

func stressTemplate() *models.Template {
	texts := []string{
		"사소한 일에도 짜증이 나거나 예민해진다",
		"밤에 잠들기 어렵거나 자주 깬다",
		"어깨나 목이 뻣뻣하게 굳는 느낌이 든다",
		"해야 할 일이 너무 많다고 느낀다",
		"가슴이 답답하거나 두근거릴 때가 있다",
		"아침에 일어나면 몸이 개운하다",
		"식욕이 지나치게 없거나 과식을 하게 된다",
		"집중력이 떨어져 실수가 잦아졌다",
		"주변 사람에게 화를 내고 후회한 적이 있다",
		"머리가 무겁거나 두통이 자주 있다",
		"아무것도 하기 싫은 무기력감이 든다",
		"미래에 대한 걱정으로 불안하다",
		"하루 중 마음이 여유로운 시간이 있다",
		"휴식을 취해도 피로가 풀리지 않는다",
		"갑자기 눈물이 나거나 감정 기복이 심하다",
		"소화가 잘 되지 않거나 속이 불편하다",
		"사람을 만나는 일이 부담스럽게 느껴진다",
		"내 상황을 아무도 이해하지 못한다고 느낀다",
		"스트레스를 받아도 금방 회복하는 편이다",
		"모든 것에서 벗어나 도망치고 싶다는 생각이 든다",
	}
	// Positive statements are reverse-keyed so a high final score always
	// reads as high stress.
	reversed := map[int]bool{6: true, 13: true, 19: true}
	qs := make([]models.Question, 0, len(texts))
	for i, txt := range texts {
		qs = append(qs, agree5(fmt.Sprintf("s%02d", i+1), txt, reversed[i+1]))
	}
	return &models.Template{
		ID:        "stress",
		Title:     "스트레스 진단",
		Subtitle:  "요즘 나의 스트레스 수준을 점검해 보세요",
		Price:     "3,900원",
		Scoring:   models.ScoringNormalized,
		Questions: qs,
		Bands: []models.Band{
			{MinScore: 81, Message: "스트레스가 매우 높은 상태예요. 몸과 마음 모두 휴식이 시급하며, 전문가의 도움을 받아 보는 것을 권해요."},
			{MinScore: 61, Message: "스트레스가 높은 편이에요. 나만의 회복 루틴을 만들고 주변에 도움을 요청해 보세요."},
			{MinScore: 41, Message: "보통 수준의 스트레스예요. 무리하지 않는 선에서 일과 휴식의 균형을 지켜 보세요."},
			{MinScore: 21, Message: "스트레스를 잘 관리하고 있어요. 지금의 생활 리듬을 유지해 보세요."},
			{MinScore: 0, Message: "스트레스가 거의 없는 안정적인 상태예요."},
		},
	}
}

func depressionTemplate() *models.Template {
	texts := []string{
		"매사에 흥미나 즐거움이 줄었다",
		"기분이 가라앉거나 우울하다",
		"잠들기 어렵거나 너무 많이 잔다",
		"피곤하고 기운이 없다",
		"입맛이 없거나 과식을 한다",
		"나 자신이 실패자처럼 느껴진다",
		"책을 읽거나 TV를 보는 일에 집중하기 어렵다",
		"평소보다 말이나 행동이 느려졌다",
		"차라리 사라지고 싶다는 생각이 든다",
		"사소한 결정도 내리기 어렵다",
		"아침에 일어나는 것이 힘겹다",
		"주변 사람들과 어울리고 싶지 않다",
		"이유 없이 눈물이 난다",
		"나의 미래가 어둡게 느껴진다",
		"예전에는 즐겁던 일이 더 이상 즐겁지 않다",
	}
	qs := make([]models.Question, 0, len(texts))
	for i, txt := range texts {
		qs = append(qs, freq4(fmt.Sprintf("d%02d", i+1), txt))
	}
	return &models.Template{
		ID:        "depression",
		Title:     "우울감 진단",
		Subtitle:  "최근 2주간의 마음 상태를 돌아보세요",
		Price:     "3,900원",
		Scoring:   models.ScoringNormalized,
		Questions: qs,
		Bands: []models.Band{
			{MinScore: 76, Message: "우울감이 심한 상태로 보여요. 혼자 견디지 말고 꼭 전문가와 상담해 보세요."},
			{MinScore: 51, Message: "우울감이 상당히 높은 편이에요. 믿을 수 있는 사람에게 마음을 털어놓고, 상담 콘텐츠를 살펴보세요."},
			{MinScore: 26, Message: "가벼운 우울감이 있어요. 산책이나 가벼운 운동처럼 기분을 환기할 수 있는 활동을 늘려 보세요."},
			{MinScore: 0, Message: "마음 상태가 안정적이에요. 지금의 일상을 잘 지켜 나가세요."},
		},
	}
}

// baselineTemplate is the legacy daily check that predates account
// linking. It keeps the original raw-sum scoring and remains available
// to unauthenticated devices.
func baselineTemplate() *models.Template {
	qs := []models.Question{
		ynq("b01", "오늘 상대방과 따뜻한 대화를 나눴다", 10, -5, 0),
		ynq("b02", "상대방의 기분을 먼저 물어본 적이 있다", 10, -5, 0),
		ynq("b03", "상대방에게 고맙다는 말을 전했다", 10, -5, 0),
		ynq("b04", "상대방에게 서운한 감정을 쌓아두고 있다", -5, 10, 0),
		ynq("b05", "함께 저녁 시간을 보냈다", 10, -5, 0),
		ynq("b06", "오늘 상대방과 다퉜다", -5, 10, 0),
		ynq("b07", "상대방의 이야기에 충분히 공감해 주었다", 10, -5, 0),
		ynq("b08", "먼저 연락하거나 안부를 물었다", 10, -5, 0),
		ynq("b09", "상대방의 말을 건성으로 들은 적이 있다", -5, 10, 0),
		ynq("b10", "내일 함께 하고 싶은 일을 이야기했다", 10, -5, 0),
	}
	return &models.Template{
		ID:        "baseline",
		Title:     "오늘의 관계 체크",
		Subtitle:  "하루 동안의 우리 사이를 돌아보세요",
		Price:     "무료",
		Scoring:   models.ScoringRawSum,
		Questions: qs,
		Bands: []models.Band{
			{MinScore: 70, Message: "오늘 두 사람 사이에 따뜻한 순간이 가득했어요."},
			{MinScore: 40, Message: "꽤 괜찮은 하루였어요. 자기 전에 한 번 더 마음을 표현해 보세요."},
			{MinScore: 10, Message: "좋은 순간과 아쉬운 순간이 섞인 하루였어요. 내일은 먼저 다가가 보세요."},
			{MinScore: -50, Message: "오늘은 서로에게 소홀했던 하루였을 수 있어요. 짧은 안부 인사부터 시작해 보세요."},
		},
		GuestAllowed: true,
	}
}
