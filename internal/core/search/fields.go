package search

// NumericField 營養與份量篩選欄位，值同時是查詢參數的後綴
type NumericField string

const (
	Calories     NumericField = "Calories"
	Fat          NumericField = "Fat"
	SaturatedFat NumericField = "Saturated_Fat"
	Cholesterol  NumericField = "Cholesterol"
	Sodium       NumericField = "Sodium"
	Carbohydrate NumericField = "Carbohydrate"
	Fiber        NumericField = "Fiber"
	Sugar        NumericField = "Sugar"
	Protein      NumericField = "Protein"
	Servings     NumericField = "RecipeServings"
)

// servingsAlias 舊版表單使用的份量參數後綴
const servingsAlias = "Servings"

// NumericFields 固定順序，決定 WHERE 子句的排列
var NumericFields = []NumericField{
	Calories, Fat, SaturatedFat, Cholesterol, Sodium,
	Carbohydrate, Fiber, Sugar, Protein, Servings,
}

type columnSpec struct {
	column string
	param  string
}

var numericColumns = map[NumericField]columnSpec{
	Calories:     {"m.calories", "calories"},
	Fat:          {"m.fat", "fat"},
	SaturatedFat: {"m.saturated_fat", "saturated_fat"},
	Cholesterol:  {"m.cholesterol", "cholesterol"},
	Sodium:       {"m.sodium", "sodium"},
	Carbohydrate: {"m.carbohydrate", "carbohydrate"},
	Fiber:        {"m.fiber", "fiber"},
	Sugar:        {"m.sugar", "sugar"},
	Protein:      {"m.protein", "protein"},
	Servings:     {"r.recipe_servings", "servings"},
}

// Column 回傳欄位對應的資料表欄位
func (f NumericField) Column() string {
	return numericColumns[f].column
}

// Valid 是否為已知欄位
func (f NumericField) Valid() bool {
	_, ok := numericColumns[f]
	return ok
}

// DurationField 時間篩選欄位
type DurationField string

const (
	PrepTime  DurationField = "PrepTime"
	CookTime  DurationField = "CookTime"
	TotalTime DurationField = "TotalTime"
)

// DurationFields 固定順序
var DurationFields = []DurationField{PrepTime, CookTime, TotalTime}

var durationColumns = map[DurationField]columnSpec{
	PrepTime:  {"m.prep_time_seconds", "prep_time"},
	CookTime:  {"m.cook_time_seconds", "cook_time"},
	TotalTime: {"m.total_time_seconds", "total_time"},
}

// Column 回傳儲存秒數的欄位
func (f DurationField) Column() string {
	return durationColumns[f].column
}

// Valid 是否為已知欄位
func (f DurationField) Valid() bool {
	_, ok := durationColumns[f]
	return ok
}
