package sentiment

import "github.com/spacesedan/sentilens/internal/models"

// emotionLexicon lists base word forms that signal each emotion.
var emotionLexicon = map[models.Emotion][]string{
	models.Happy: {
		"happy", "happiness", "joy", "joyful", "glad", "delight", "delighted", "delightful",
		"love", "lovely", "enjoy", "pleased", "pleasure", "cheerful", "great", "wonderful",
		"awesome", "excellent", "fantastic", "amazing", "fun", "smile", "laugh", "yummy",
		"delicious", "tasty", "satisfied", "thankful", "grateful", "excited", "celebrate",
		"friendly", "nice", "perfect", "best", "favorite", "fresh", "hooray", "yay", "glee",
	},
	models.Angry: {
		"angry", "anger", "mad", "furious", "rage", "annoyed", "annoying", "irritated",
		"hate", "hated", "hateful", "rude", "disgusting", "disgust", "outraged", "terrible",
		"awful", "horrible", "worst", "stupid", "ridiculous", "unacceptable", "yell", "shout",
		"insult", "frustrated", "frustrating", "livid", "hostile", "cheat", "scam", "dirty",
		"incompetent", "pathetic", "useless", "damn", "disrespect", "fed",
	},
	models.Surprise: {
		"surprise", "surprised", "surprising", "amazed", "astonished", "astonishing",
		"shocked", "shock", "unexpected", "unexpectedly", "sudden", "suddenly", "wow",
		"whoa", "unbelievable", "incredible", "stunned", "startled", "speechless", "omg",
		"strange", "weird", "odd", "curious", "mysterious", "suspicious", "finally",
	},
	models.Sad: {
		"sad", "sadness", "unhappy", "sorrow", "cry", "crying", "tears", "depressed",
		"depressing", "miserable", "lonely", "alone", "disappointed", "disappointing",
		"disappointment", "regret", "sorry", "upset", "hurt", "heartbroken", "gloomy",
		"grief", "lost", "miss", "cold", "stale", "bland", "waste", "broken", "poor",
		"pity", "unfortunately", "failed", "fail", "wait", "waiting", "slow",
	},
	models.Fear: {
		"fear", "afraid", "scared", "scary", "frightened", "terrified", "terror", "panic",
		"anxious", "anxiety", "nervous", "worried", "worry", "dread", "horror", "unsafe",
		"danger", "dangerous", "threat", "risk", "sick", "poisoning", "nightmare", "creepy",
		"alarming", "alarmed", "uneasy", "tense", "shaking", "emergency", "hazard",
	},
}

// emotionIndex maps each lexicon word to the emotions it signals.
var emotionIndex = buildEmotionIndex()

func buildEmotionIndex() map[string][]models.Emotion {
	index := make(map[string][]models.Emotion)
	for _, emotion := range models.Emotions {
		for _, word := range emotionLexicon[emotion] {
			index[word] = append(index[word], emotion)
		}
	}
	return index
}
