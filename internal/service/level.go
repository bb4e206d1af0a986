package service

// 等级阶梯：清掉第 k 级需要 k×100 经验，等级永远由总经验重算，
// 不做增量维护，乱序或并发入账下结果仍然一致

// LevelForXP 由累计经验推导当前等级与升到下一级还差的经验
func LevelForXP(totalXP int64) (int, int64) {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	var cleared int64
	for {
		cost := int64(level) * 100
		if totalXP < cleared+cost {
			return level, cleared + cost - totalXP
		}
		cleared += cost
		level++
	}
}
